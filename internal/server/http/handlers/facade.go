package handlers

import (
	"context"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, reg model.Registration) (*model.User, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, actorID int64, sub model.OrderSubmission) (*model.Placement, error)
	Order(ctx context.Context, actorID, orderID int64) (*model.ComposedOrder, error)
	OwnerOrders(ctx context.Context, actorID, ownerID int64) ([]model.ComposedOrder, error)
	AllOrders(ctx context.Context, actorID int64, page model.PageRequest) (*model.OrderPage, error)
	OrderSummary(ctx context.Context, actorID int64) (*model.OrderSummary, error)
	OrderDocument(ctx context.Context, actorID, orderID int64) (*model.ComposedOrder, []byte, error)
	ResendDocument(ctx context.Context, actorID, orderID int64) (*model.DispatchReceipt, error)
}

// ShopFacade aggregates the full set of operations used across handlers.
type ShopFacade interface {
	AuthFacade
	OrderFacade
}
