package test

import (
	"context"
	"sync"

	"github.com/verdora/ecotrade/internal/domain/model"
)

// WorkerFacadeStub fakes the application facade the status worker polls.
// Batches in Orders are handed out one per poll; later polls return nothing.
type WorkerFacadeStub struct {
	sync.Mutex

	Orders  [][]model.Order
	CheckFn func(ctx context.Context, ref string) (*model.Fulfillment, error)

	Updates   []WorkerStatusUpdate
	Projected []int64
	polls     int
}

// WorkerStatusUpdate records an UpdateOrderStatus invocation.
type WorkerStatusUpdate struct {
	OrderID int64
	Status  model.OrderStatus
}

// OrdersForProcessing returns the next configured batch.
func (s *WorkerFacadeStub) OrdersForProcessing(ctx context.Context, limit int) ([]model.Order, error) {
	s.Lock()
	defer s.Unlock()
	if s.polls >= len(s.Orders) {
		return nil, nil
	}
	batch := s.Orders[s.polls]
	s.polls++
	return batch, nil
}

// CheckFulfillment resolves via CheckFn, defaulting to FULFILLED.
func (s *WorkerFacadeStub) CheckFulfillment(ctx context.Context, ref string) (*model.Fulfillment, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, ref)
	}
	return &model.Fulfillment{Ref: ref, Status: model.FulfillmentFulfilled}, nil
}

// UpdateOrderStatus records the invocation.
func (s *WorkerFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	s.Lock()
	defer s.Unlock()
	s.Updates = append(s.Updates, WorkerStatusUpdate{OrderID: orderID, Status: status})
	return nil
}

// ProjectOrderPlants records the invocation.
func (s *WorkerFacadeStub) ProjectOrderPlants(ctx context.Context, orderID int64) error {
	s.Lock()
	defer s.Unlock()
	s.Projected = append(s.Projected, orderID)
	return nil
}
