package test

import (
	"context"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
)

// FulfillmentClientStub fakes the external catalog and fulfillment service.
type FulfillmentClientStub struct {
	Products map[int64]*model.Product
	Statuses map[string]model.FulfillmentStatus
	NextRef  string

	SubmitFn  func(context.Context, *model.Order) (string, error)
	FetchFn   func(context.Context, string) (*model.Fulfillment, error)
	ProductFn func(context.Context, int64) (*model.Product, error)

	Submitted []model.Order
	Fetched   []string
}

// NewFulfillmentClientStub constructs the stub with initialized maps.
func NewFulfillmentClientStub() *FulfillmentClientStub {
	return &FulfillmentClientStub{
		Products: make(map[int64]*model.Product),
		Statuses: make(map[string]model.FulfillmentStatus),
		NextRef:  "ref-1",
	}
}

// Submit records the order and returns the configured reference.
func (s *FulfillmentClientStub) Submit(ctx context.Context, order *model.Order) (string, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, order)
	}
	s.Submitted = append(s.Submitted, *order)
	return s.NextRef, nil
}

// Fetch resolves the configured status for the reference.
func (s *FulfillmentClientStub) Fetch(ctx context.Context, ref string) (*model.Fulfillment, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, ref)
	}
	s.Fetched = append(s.Fetched, ref)
	status, ok := s.Statuses[ref]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &model.Fulfillment{Ref: ref, Status: status}, nil
}

// Product resolves a configured catalog entry.
func (s *FulfillmentClientStub) Product(ctx context.Context, productID int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, productID)
	}
	p, ok := s.Products[productID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *p
	return &clone, nil
}
