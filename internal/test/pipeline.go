package test

import (
	"context"
	"sync"
	"time"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

// DocumentBuilderStub returns fixed bytes and counts calls.
type DocumentBuilderStub struct {
	BuildFn func(*model.ComposedOrder) ([]byte, error)
	Calls   int
}

func (s *DocumentBuilderStub) Build(order *model.ComposedOrder) ([]byte, error) {
	s.Calls++
	if s.BuildFn != nil {
		return s.BuildFn(order)
	}
	return []byte("%PDF-stub"), nil
}

// DispatcherStub records dispatched orders.
type DispatcherStub struct {
	DispatchFn func(context.Context, *model.ComposedOrder, []byte) (*model.DispatchReceipt, error)
	Sent       []int64
}

func (s *DispatcherStub) Dispatch(ctx context.Context, order *model.ComposedOrder, document []byte) (*model.DispatchReceipt, error) {
	if s.DispatchFn != nil {
		return s.DispatchFn(ctx, order, document)
	}
	s.Sent = append(s.Sent, order.ID)
	return &model.DispatchReceipt{
		OrderID:   order.ID,
		Recipient: order.RecipientEmail(),
		SentAt:    time.Unix(0, 0).UTC(),
	}, nil
}

// PipelineRecorderStub collects pipeline outcomes.
type PipelineRecorderStub struct {
	mu            sync.Mutex
	Placed        int
	Notifications []string
	Resends       []string
}

func (s *PipelineRecorderStub) OrderPlaced() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Placed++
}

func (s *PipelineRecorderStub) Notification(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = append(s.Notifications, status)
}

func (s *PipelineRecorderStub) DocumentResent(result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Resends = append(s.Resends, result)
}
