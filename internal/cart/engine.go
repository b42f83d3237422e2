// Package cart composes the reward calculator and the points ledger into the
// cart pricing engine: line management, per-line point redemption, the
// apply-all-points discount, and the two-phase checkout against the external
// fulfillment service.
package cart

import (
	"context"
	"errors"
	"sync"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/domain/repository"
	"github.com/verdora/ecotrade/internal/rewards"
)

// Ledger is the slice of the points ledger the engine needs.
type Ledger interface {
	Earn(ctx context.Context, accountID, amount int64) error
	Spend(ctx context.Context, accountID, amount int64) error
	Balance(ctx context.Context, accountID int64) (int64, error)
}

// Catalog fetches product details for cart additions.
type Catalog interface {
	Product(ctx context.Context, productID int64) (*model.Product, error)
}

// Submitter sends confirmed orders to the external fulfillment service.
type Submitter interface {
	Submit(ctx context.Context, order *model.Order) (string, error)
}

// Pricing is the computed money/points view of a cart.
type Pricing struct {
	Subtotal       float64
	PointsDiscount float64
	FinalTotal     float64
	PointsConsumed int64
	PointsEarned   int64
	Balance        int64
}

// Engine is the cart pricing engine. Cart state is loaded from and saved to
// the snapshot store on every mutation, so a crash never loses more than the
// in-flight operation.
type Engine struct {
	carts     repository.CartRepository
	orders    repository.OrderRepository
	ledger    Ledger
	catalog   Catalog
	submitter Submitter

	mu       sync.Mutex
	inFlight map[int64]bool
}

// NewEngine constructs Engine.
func NewEngine(carts repository.CartRepository, orders repository.OrderRepository, ledger Ledger, catalog Catalog, submitter Submitter) *Engine {
	return &Engine{
		carts:     carts,
		orders:    orders,
		ledger:    ledger,
		catalog:   catalog,
		submitter: submitter,
		inFlight:  make(map[int64]bool),
	}
}

// Snapshot returns the current cart contents.
func (e *Engine) Snapshot(ctx context.Context, accountID int64) (*model.CartSnapshot, error) {
	return e.carts.Load(ctx, accountID)
}

// AddItem adds one unit of the product to the cart, fetching price, earn rate
// and redemption cost from the catalog. An existing line gains quantity.
func (e *Engine) AddItem(ctx context.Context, accountID, productID int64) (*model.CartSnapshot, error) {
	product, err := e.catalog.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	snap, err := e.carts.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if line := snap.Line(productID); line != nil {
		line.Quantity++
	} else {
		snap.Lines = append(snap.Lines, model.CartLine{
			ProductID:   product.ID,
			Name:        product.Name,
			UnitPrice:   product.Price,
			Quantity:    1,
			EarnPerUnit: product.EarnPerUnit,
			RedeemCost:  product.RedeemCost,
			IsPlant:     product.IsPlant,
		})
	}

	if err := e.carts.Save(ctx, accountID, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// RemoveItem deletes the line with the given product id.
func (e *Engine) RemoveItem(ctx context.Context, accountID, productID int64) error {
	snap, err := e.carts.Load(ctx, accountID)
	if err != nil {
		return err
	}
	if !snap.RemoveLine(productID) {
		return domainErrors.ErrNotFound
	}
	return e.carts.Save(ctx, accountID, snap)
}

// SetQuantity updates a line's quantity. Quantities below one are rejected
// before any mutation; a redeemed line stays redeemed.
func (e *Engine) SetQuantity(ctx context.Context, accountID, productID int64, quantity int) (*model.CartSnapshot, error) {
	if quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	snap, err := e.carts.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	line := snap.Line(productID)
	if line == nil {
		return nil, domainErrors.ErrNotFound
	}
	line.Quantity = quantity

	if err := e.carts.Save(ctx, accountID, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// SetApplyPoints toggles the "apply all available points" flag.
func (e *Engine) SetApplyPoints(ctx context.Context, accountID int64, apply bool) error {
	snap, err := e.carts.Load(ctx, accountID)
	if err != nil {
		return err
	}
	snap.ApplyPoints = apply
	return e.carts.Save(ctx, accountID, snap)
}

// RedeemItem marks the line paid entirely with points. This is the only
// redemption path: the spend and the flag flip form one logical transaction,
// and a failed spend leaves the line untouched.
func (e *Engine) RedeemItem(ctx context.Context, accountID, productID int64) (*model.CartSnapshot, error) {
	snap, err := e.carts.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	line := snap.Line(productID)
	if line == nil {
		return nil, domainErrors.ErrNotFound
	}
	if line.Redeemed {
		return snap, nil
	}
	cost := rewards.RedeemCostForLine(*line)
	if cost <= 0 {
		return nil, domainErrors.ErrNotRedeemable
	}

	if err := e.ledger.Spend(ctx, accountID, cost); err != nil {
		return nil, err
	}

	line.Redeemed = true
	if err := e.carts.Save(ctx, accountID, snap); err != nil {
		// The spend already committed; hand the points back rather than
		// leave them orphaned on a failed snapshot write.
		if refundErr := e.ledger.Earn(ctx, accountID, cost); refundErr != nil {
			return nil, errors.Join(err, refundErr)
		}
		return nil, err
	}
	return snap, nil
}

// Subtotal sums unit price times quantity over non-redeemed lines.
func Subtotal(snap *model.CartSnapshot) float64 {
	var total float64
	for _, line := range snap.Lines {
		if line.Redeemed {
			continue
		}
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// TotalPointsEarned sums the purchase earn over all lines.
func TotalPointsEarned(snap *model.CartSnapshot) int64 {
	var total int64
	for _, line := range snap.Lines {
		total += rewards.EarnForLine(line)
	}
	return total
}

// PointsSpentOnRedemptions sums the redeem cost of redeemed lines.
func PointsSpentOnRedemptions(snap *model.CartSnapshot) int64 {
	var total int64
	for _, line := range snap.Lines {
		if line.Redeemed {
			total += line.RedeemCost
		}
	}
	return total
}

// price computes the full pricing view for a snapshot against a balance.
func price(snap *model.CartSnapshot, balance int64) Pricing {
	p := Pricing{
		Subtotal:     Subtotal(snap),
		PointsEarned: TotalPointsEarned(snap),
		Balance:      balance,
	}
	if snap.ApplyPoints {
		discount := rewards.PointsToCurrency(balance)
		if discount > p.Subtotal {
			discount = p.Subtotal
		}
		p.PointsDiscount = discount
		p.PointsConsumed = rewards.CurrencyToPoints(discount)
		if p.PointsConsumed > balance {
			p.PointsConsumed = balance
		}
	}
	p.FinalTotal = p.Subtotal - p.PointsDiscount
	if p.FinalTotal < 0 {
		p.FinalTotal = 0
	}
	return p
}

// Price returns subtotal, points discount, final total and earn for the cart.
func (e *Engine) Price(ctx context.Context, accountID int64) (*Pricing, error) {
	snap, err := e.carts.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	balance, err := e.ledger.Balance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	p := price(snap, balance)
	return &p, nil
}

// Checkout confirms the cart: it spends the applied points, submits the order
// to the fulfillment service, credits the earned points, and clears the cart.
// The speculative spend is refunded when submission fails, so a failed
// checkout leaves the ledger net untouched. A second checkout for the same
// account cannot start while one is in flight.
func (e *Engine) Checkout(ctx context.Context, accountID int64) (*model.Order, error) {
	if !e.begin(accountID) {
		return nil, domainErrors.ErrCheckoutInProgress
	}
	defer e.end(accountID)

	snap, err := e.carts.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(snap.Lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	balance, err := e.ledger.Balance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	pricing := price(snap, balance)

	// Re-validated at commit time; the balance may have changed since the
	// flag was set.
	if pricing.PointsConsumed > 0 {
		if err := e.ledger.Spend(ctx, accountID, pricing.PointsConsumed); err != nil {
			return nil, err
		}
	}

	order := buildOrder(accountID, snap, pricing)

	ref, err := e.submitter.Submit(ctx, order)
	if err != nil {
		if pricing.PointsConsumed > 0 {
			if refundErr := e.ledger.Earn(ctx, accountID, pricing.PointsConsumed); refundErr != nil {
				return nil, errors.Join(err, refundErr)
			}
		}
		return nil, errors.Join(domainErrors.ErrExternalService, err)
	}
	order.ExternalRef = ref

	created, err := e.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := e.ledger.Earn(ctx, accountID, pricing.PointsEarned); err != nil {
		return nil, err
	}

	if err := e.carts.Clear(ctx, accountID); err != nil {
		return nil, err
	}
	return created, nil
}

func buildOrder(accountID int64, snap *model.CartSnapshot, pricing Pricing) *model.Order {
	lines := make([]model.OrderLine, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, model.OrderLine{
			ProductID:   l.ProductID,
			Name:        l.Name,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			EarnPerUnit: l.EarnPerUnit,
			Redeemed:    l.Redeemed,
			IsPlant:     l.IsPlant,
		})
	}
	return &model.Order{
		AccountID:    accountID,
		Lines:        lines,
		Status:       model.OrderStatusSubmitted,
		Total:        pricing.FinalTotal,
		PointsSpent:  pricing.PointsConsumed + PointsSpentOnRedemptions(snap),
		PointsEarned: pricing.PointsEarned,
	}
}

func (e *Engine) begin(accountID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inFlight[accountID] {
		return false
	}
	e.inFlight[accountID] = true
	return true
}

func (e *Engine) end(accountID int64) {
	e.mu.Lock()
	delete(e.inFlight, accountID)
	e.mu.Unlock()
}
