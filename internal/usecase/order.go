package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/repository"
)

// DocumentBuilder renders the delivery note of a composed order.
type DocumentBuilder interface {
	Build(order *model.ComposedOrder) ([]byte, error)
}

// Dispatcher delivers a rendered delivery note to the order owner.
type Dispatcher interface {
	Dispatch(ctx context.Context, order *model.ComposedOrder, document []byte) (*model.DispatchReceipt, error)
}

// PipelineRecorder receives pipeline outcomes for metrics.
type PipelineRecorder interface {
	OrderPlaced()
	Notification(status string)
	DocumentResent(result string)
}

// OrderUseCase runs order placement and the guarded order queries.
type OrderUseCase struct {
	orders     repository.OrderRepository
	users      repository.UserRepository
	validator  *OrderValidator
	guard      *AccessGuard
	documents  DocumentBuilder
	dispatcher Dispatcher
	recorder   PipelineRecorder
	logger     *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	validator *OrderValidator,
	guard *AccessGuard,
	documents DocumentBuilder,
	dispatcher Dispatcher,
	recorder PipelineRecorder,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:     orders,
		users:      users,
		validator:  validator,
		guard:      guard,
		documents:  documents,
		dispatcher: dispatcher,
		recorder:   recorder,
		logger:     logger,
	}
}

// Place validates and persists an order, then tries to send its delivery
// note. Once the order is committed the returned error is always nil and the
// notification outcome is reported in the placement.
func (u *OrderUseCase) Place(ctx context.Context, actorID int64, sub model.OrderSubmission) (*model.Placement, error) {
	if actorID <= 0 {
		return nil, domainErrors.ErrUnauthenticated
	}

	draft, err := u.validator.Validate(ctx, actorID, sub)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Create(ctx, *draft)
	if err != nil {
		return nil, err
	}
	u.recorder.OrderPlaced()
	u.logger.Info("order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", actorID),
		slog.Int("lines", len(order.Lines)),
		slog.String("total", order.Total.StringFixed(2)))

	outcome := u.notify(ctx, order)
	u.recorder.Notification(string(outcome.Status))

	return &model.Placement{Order: order, Notification: outcome}, nil
}

func (u *OrderUseCase) notify(ctx context.Context, order *model.ComposedOrder) model.NotificationOutcome {
	recipient := order.RecipientEmail()
	if recipient == "" {
		u.logger.Info("order notification skipped", slog.Int64("order_id", order.ID), slog.String("reason", "no email"))
		return model.NotificationOutcome{
			Status:  model.NotificationSkipped,
			Warning: domainErrors.ErrMissingEmail.Error(),
		}
	}

	document, err := u.documents.Build(order)
	if err != nil {
		u.logger.Warn("order notification failed",
			slog.Int64("order_id", order.ID), slog.String("stage", "render"), slog.Any("error", err))
		return model.NotificationOutcome{
			Status:    model.NotificationFailed,
			Recipient: recipient,
			Warning:   "order created but the delivery note could not be generated; use the resend endpoint",
		}
	}

	if _, err := u.dispatcher.Dispatch(ctx, order, document); err != nil {
		u.logger.Warn("order notification failed",
			slog.Int64("order_id", order.ID), slog.String("stage", "dispatch"), slog.Any("error", err))
		return model.NotificationOutcome{
			Status:    model.NotificationFailed,
			Recipient: recipient,
			Warning:   "order created but the delivery note email could not be sent; use the resend endpoint",
		}
	}

	return model.NotificationOutcome{Status: model.NotificationSent, Recipient: recipient}
}

// Get returns one order. A missing order is reported before a denial.
func (u *OrderUseCase) Get(ctx context.Context, actorID, orderID int64) (*model.ComposedOrder, error) {
	if actorID <= 0 {
		return nil, domainErrors.ErrUnauthenticated
	}
	if orderID <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !u.guard.CanAccessOrder(ctx, actorID, order.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByOwner returns the orders of ownerID, newest first.
func (u *OrderUseCase) ListByOwner(ctx context.Context, actorID, ownerID int64) ([]model.ComposedOrder, error) {
	if actorID <= 0 {
		return nil, domainErrors.ErrUnauthenticated
	}
	if ownerID <= 0 {
		return nil, domainErrors.ErrInvalidID
	}
	if !u.guard.CanAccessOrder(ctx, actorID, ownerID) {
		return nil, domainErrors.ErrForbidden
	}
	if _, err := u.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return u.orders.ListByOwner(ctx, ownerID)
}

// ListAll returns a page of every order. Elevated users only.
func (u *OrderUseCase) ListAll(ctx context.Context, actorID int64, page model.PageRequest) (*model.OrderPage, error) {
	if actorID <= 0 {
		return nil, domainErrors.ErrUnauthenticated
	}
	if !u.guard.IsElevated(ctx, actorID) {
		return nil, domainErrors.ErrForbidden
	}
	return u.orders.ListAll(ctx, page.Normalize())
}

// Summary aggregates the order history of the acting user.
func (u *OrderUseCase) Summary(ctx context.Context, actorID int64) (*model.OrderSummary, error) {
	if actorID <= 0 {
		return nil, domainErrors.ErrUnauthenticated
	}
	return u.orders.Summary(ctx, actorID)
}

// Document renders the delivery note of an accessible order.
func (u *OrderUseCase) Document(ctx context.Context, actorID, orderID int64) (*model.ComposedOrder, []byte, error) {
	order, err := u.Get(ctx, actorID, orderID)
	if err != nil {
		return nil, nil, err
	}
	document, err := u.documents.Build(order)
	if err != nil {
		return nil, nil, fmt.Errorf("render delivery note: %w", err)
	}
	return order, document, nil
}

// ResendDocument renders and dispatches the delivery note again.
// Transport failures are wrapped in ErrDispatchFailed.
func (u *OrderUseCase) ResendDocument(ctx context.Context, actorID, orderID int64) (*model.DispatchReceipt, error) {
	order, err := u.Get(ctx, actorID, orderID)
	if err != nil {
		return nil, err
	}
	if order.RecipientEmail() == "" {
		u.recorder.DocumentResent("rejected")
		return nil, domainErrors.ErrMissingEmail
	}

	document, err := u.documents.Build(order)
	if err != nil {
		u.recorder.DocumentResent("error")
		return nil, fmt.Errorf("render delivery note: %w", err)
	}

	receipt, err := u.dispatcher.Dispatch(ctx, order, document)
	if err != nil {
		u.recorder.DocumentResent("error")
		if errors.Is(err, domainErrors.ErrMissingEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrDispatchFailed, err)
	}

	u.recorder.DocumentResent("sent")
	u.logger.Info("delivery note resent",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", actorID),
		slog.String("recipient", receipt.Recipient))
	return receipt, nil
}
