package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/verdora/ecotrade/internal/adapter/fulfillment"
	"github.com/verdora/ecotrade/internal/domain/model"
)

// MarketFacade exposes the subset of application functionality required by the worker.
type MarketFacade interface {
	OrdersForProcessing(ctx context.Context, limit int) ([]model.Order, error)
	CheckFulfillment(ctx context.Context, ref string) (*model.Fulfillment, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	ProjectOrderPlants(ctx context.Context, orderID int64) error
}

// FulfillmentProcessor polls the fulfillment service and updates order
// statuses concurrently. When an order reaches FULFILLED it also triggers the
// plant projection for that order's plant lines.
type FulfillmentProcessor struct {
	facade       MarketFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewFulfillmentProcessor constructs the order status worker pool.
func NewFulfillmentProcessor(facade MarketFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *FulfillmentProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &FulfillmentProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing. The pool runs on a context detached
// from ctx: lifecycle start contexts are canceled once startup completes, so
// only Stop terminates the pool. Values on ctx are preserved.
func (p *FulfillmentProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *FulfillmentProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *FulfillmentProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *FulfillmentProcessor) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.OrdersForProcessing(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch orders for processing failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *FulfillmentProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleOrder(ctx, order)
		}
	}
}

func (p *FulfillmentProcessor) handleOrder(ctx context.Context, order model.Order) {
	result, err := p.facade.CheckFulfillment(ctx, order.ExternalRef)
	if err != nil {
		switch e := err.(type) {
		case fulfillment.TooManyRequestsError:
			p.logger.Warn("fulfillment rate limited", slog.Duration("retry_after", e.RetryAfter))
			time.Sleep(e.RetryAfter)
		default:
			if errors.Is(err, fulfillment.ErrOrderNotRegistered) {
				time.Sleep(p.pollInterval)
				return
			}
			p.logger.Error("fulfillment fetch failed", slog.String("ref", order.ExternalRef), slog.String("error", err.Error()))
		}
		return
	}

	var status model.OrderStatus
	switch result.Status {
	case model.FulfillmentAccepted, model.FulfillmentProcessing:
		status = model.OrderStatusProcessing
	case model.FulfillmentRejected:
		status = model.OrderStatusRejected
	case model.FulfillmentFulfilled:
		status = model.OrderStatusFulfilled
	default:
		status = model.OrderStatusProcessing
	}

	if err := p.facade.UpdateOrderStatus(ctx, order.ID, status); err != nil {
		p.logger.Error("update order status failed", slog.String("ref", order.ExternalRef), slog.String("error", err.Error()))
		return
	}

	if status == model.OrderStatusFulfilled {
		if err := p.facade.ProjectOrderPlants(ctx, order.ID); err != nil {
			p.logger.Error("plant projection failed", slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
		}
	}
}
