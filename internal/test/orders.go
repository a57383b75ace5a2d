package test

import (
	"context"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn    func(context.Context, int64, model.OrderSubmission) (*model.Placement, error)
	OrderFn    func(context.Context, int64, int64) (*model.ComposedOrder, error)
	OwnerFn    func(context.Context, int64, int64) ([]model.ComposedOrder, error)
	AllFn      func(context.Context, int64, model.PageRequest) (*model.OrderPage, error)
	SummaryFn  func(context.Context, int64) (*model.OrderSummary, error)
	DocumentFn func(context.Context, int64, int64) (*model.ComposedOrder, []byte, error)
	ResendFn   func(context.Context, int64, int64) (*model.DispatchReceipt, error)
}

// PlaceOrder delegates to provided function or echoes the submission.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, actorID int64, sub model.OrderSubmission) (*model.Placement, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, actorID, sub)
	}
	order := ComposedOrderFixture(1, actorID)
	order.Total = sub.Total
	return &model.Placement{Order: order, Notification: model.NotificationOutcome{Status: model.NotificationSent, Recipient: order.RecipientEmail()}}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, actorID, orderID int64) (*model.ComposedOrder, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, actorID, orderID)
	}
	return ComposedOrderFixture(orderID, actorID), nil
}

func (s OrderFacadeStub) OwnerOrders(ctx context.Context, actorID, ownerID int64) ([]model.ComposedOrder, error) {
	if s.OwnerFn != nil {
		return s.OwnerFn(ctx, actorID, ownerID)
	}
	return []model.ComposedOrder{*ComposedOrderFixture(1, ownerID)}, nil
}

func (s OrderFacadeStub) AllOrders(ctx context.Context, actorID int64, page model.PageRequest) (*model.OrderPage, error) {
	if s.AllFn != nil {
		return s.AllFn(ctx, actorID, page)
	}
	page = page.Normalize()
	return &model.OrderPage{Orders: []model.ComposedOrder{*ComposedOrderFixture(1, 2)}, Total: 1, Page: page.Page, Limit: page.Limit, Pages: 1}, nil
}

func (s OrderFacadeStub) OrderSummary(ctx context.Context, actorID int64) (*model.OrderSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, actorID)
	}
	return &model.OrderSummary{}, nil
}

func (s OrderFacadeStub) OrderDocument(ctx context.Context, actorID, orderID int64) (*model.ComposedOrder, []byte, error) {
	if s.DocumentFn != nil {
		return s.DocumentFn(ctx, actorID, orderID)
	}
	return ComposedOrderFixture(orderID, actorID), []byte("%PDF-1.3 stub"), nil
}

func (s OrderFacadeStub) ResendDocument(ctx context.Context, actorID, orderID int64) (*model.DispatchReceipt, error) {
	if s.ResendFn != nil {
		return s.ResendFn(ctx, actorID, orderID)
	}
	return &model.DispatchReceipt{OrderID: orderID, Recipient: "owner@example.com"}, nil
}
