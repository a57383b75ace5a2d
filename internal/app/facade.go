package app

import (
	"context"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
	"github.com/jsersan/ecommerce-backend-pdf/internal/usecase"
)

// ShopFacade is the single entry point the HTTP layer talks to.
type ShopFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
}

func NewShopFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase) *ShopFacade {
	return &ShopFacade{auth: auth, orders: orders}
}

func (f *ShopFacade) Register(ctx context.Context, reg model.Registration) (*model.User, string, error) {
	return f.auth.Register(ctx, reg)
}

func (f *ShopFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *ShopFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *ShopFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.Profile(ctx, userID)
}

func (f *ShopFacade) PlaceOrder(ctx context.Context, actorID int64, sub model.OrderSubmission) (*model.Placement, error) {
	return f.orders.Place(ctx, actorID, sub)
}

func (f *ShopFacade) Order(ctx context.Context, actorID, orderID int64) (*model.ComposedOrder, error) {
	return f.orders.Get(ctx, actorID, orderID)
}

func (f *ShopFacade) OwnerOrders(ctx context.Context, actorID, ownerID int64) ([]model.ComposedOrder, error) {
	return f.orders.ListByOwner(ctx, actorID, ownerID)
}

func (f *ShopFacade) AllOrders(ctx context.Context, actorID int64, page model.PageRequest) (*model.OrderPage, error) {
	return f.orders.ListAll(ctx, actorID, page)
}

func (f *ShopFacade) OrderSummary(ctx context.Context, actorID int64) (*model.OrderSummary, error) {
	return f.orders.Summary(ctx, actorID)
}

func (f *ShopFacade) OrderDocument(ctx context.Context, actorID, orderID int64) (*model.ComposedOrder, []byte, error) {
	return f.orders.Document(ctx, actorID, orderID)
}

func (f *ShopFacade) ResendDocument(ctx context.Context, actorID, orderID int64) (*model.DispatchReceipt, error) {
	return f.orders.ResendDocument(ctx, actorID, orderID)
}
