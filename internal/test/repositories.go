package test

import (
	"context"
	"encoding/json"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
)

// AccountRepositoryStub keeps accounts and balances in-memory with real
// conservation semantics, so ledger tests exercise the actual contract.
type AccountRepositoryStub struct {
	ByLogin map[string]*model.Account
	ByID    map[int64]*model.Account
	Next    int64
	Err     error

	EarnFn  func(context.Context, int64, int64) error
	SpendFn func(context.Context, int64, int64) error
}

// NewAccountRepositoryStub constructs the stub with initialized maps.
func NewAccountRepositoryStub() *AccountRepositoryStub {
	return &AccountRepositoryStub{
		ByLogin: make(map[string]*model.Account),
		ByID:    make(map[int64]*model.Account),
		Next:    1,
	}
}

// Seed registers an account with the given balance and returns its id.
func (s *AccountRepositoryStub) Seed(login string, points int64) int64 {
	acc := &model.Account{ID: s.Next, Login: login, Points: points}
	s.Next++
	s.ByLogin[login] = acc
	s.ByID[acc.ID] = acc
	return acc.ID
}

// Create registers an account unless the login is taken.
func (s *AccountRepositoryStub) Create(ctx context.Context, login, passwordHash string, startingPoints int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByLogin[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	acc := &model.Account{ID: s.Next, Login: login, PasswordHash: passwordHash, Points: startingPoints}
	s.Next++
	s.ByLogin[login] = acc
	s.ByID[acc.ID] = acc
	return acc, nil
}

// GetByLogin fetches an account by login or returns not found.
func (s *AccountRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if acc, ok := s.ByLogin[login]; ok {
		return acc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches an account by identifier or returns not found.
func (s *AccountRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if acc, ok := s.ByID[id]; ok {
		return acc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Balance returns the stored balance.
func (s *AccountRepositoryStub) Balance(ctx context.Context, id int64) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	acc, ok := s.ByID[id]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	return acc.Points, nil
}

// Earn increases the stored balance.
func (s *AccountRepositoryStub) Earn(ctx context.Context, id, amount int64) error {
	if s.EarnFn != nil {
		return s.EarnFn(ctx, id, amount)
	}
	if s.Err != nil {
		return s.Err
	}
	acc, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	acc.Points += amount
	return nil
}

// Spend decreases the stored balance, rejecting overdrafts.
func (s *AccountRepositoryStub) Spend(ctx context.Context, id, amount int64) error {
	if s.SpendFn != nil {
		return s.SpendFn(ctx, id, amount)
	}
	if s.Err != nil {
		return s.Err
	}
	acc, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if acc.Points < amount {
		return domainErrors.ErrInsufficientPoints
	}
	acc.Points -= amount
	return nil
}

// CartRepositoryStub persists snapshots in-memory via JSON round-trips so
// stored state is isolated from the caller's copy, mirroring real storage.
type CartRepositoryStub struct {
	Snapshots map[int64][]byte
	SaveErr   error
	LoadErr   error
	Saves     int
}

// NewCartRepositoryStub constructs the stub.
func NewCartRepositoryStub() *CartRepositoryStub {
	return &CartRepositoryStub{Snapshots: make(map[int64][]byte)}
}

// Load decodes the stored snapshot, treating absence or corruption as empty.
func (s *CartRepositoryStub) Load(ctx context.Context, accountID int64) (*model.CartSnapshot, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	raw, ok := s.Snapshots[accountID]
	if !ok {
		return &model.CartSnapshot{}, nil
	}
	var snap model.CartSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return &model.CartSnapshot{}, nil
	}
	return &snap, nil
}

// Save encodes and stores the snapshot.
func (s *CartRepositoryStub) Save(ctx context.Context, accountID int64, snapshot *model.CartSnapshot) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	s.Snapshots[accountID] = raw
	s.Saves++
	return nil
}

// Clear removes the stored snapshot.
func (s *CartRepositoryStub) Clear(ctx context.Context, accountID int64) error {
	delete(s.Snapshots, accountID)
	return nil
}

// PlantRepositoryStub stores plants in-memory for lifecycle tests.
type PlantRepositoryStub struct {
	Plants  map[int64]*model.PlantRecord
	Next    int64
	ByOrder map[int64][]int64

	MaterializeFn func(context.Context, *model.Order) ([]model.PlantRecord, error)
	Materialized  []int64
}

// NewPlantRepositoryStub constructs the stub.
func NewPlantRepositoryStub() *PlantRepositoryStub {
	return &PlantRepositoryStub{
		Plants:  make(map[int64]*model.PlantRecord),
		Next:    1,
		ByOrder: make(map[int64][]int64),
	}
}

// Add stores a plant, assigning an id when missing, and returns the id.
func (s *PlantRepositoryStub) Add(p model.PlantRecord) int64 {
	if p.ID == 0 {
		p.ID = s.Next
		s.Next++
	} else if p.ID >= s.Next {
		s.Next = p.ID + 1
	}
	stored := p
	s.Plants[p.ID] = &stored
	return p.ID
}

// GetByID fetches a copy of the stored plant.
func (s *PlantRepositoryStub) GetByID(ctx context.Context, id int64) (*model.PlantRecord, error) {
	p, ok := s.Plants[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

// ListByAccount returns plants owned by the account in id order.
func (s *PlantRepositoryStub) ListByAccount(ctx context.Context, accountID int64) ([]model.PlantRecord, error) {
	var result []model.PlantRecord
	for id := int64(1); id < s.Next; id++ {
		if p, ok := s.Plants[id]; ok && p.AccountID == accountID {
			result = append(result, *p)
		}
	}
	return result, nil
}

// Update overwrites the stored plant.
func (s *PlantRepositoryStub) Update(ctx context.Context, plant *model.PlantRecord) error {
	if _, ok := s.Plants[plant.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	clone := *plant
	s.Plants[plant.ID] = &clone
	return nil
}

// Delete removes the stored plant.
func (s *PlantRepositoryStub) Delete(ctx context.Context, id int64) error {
	if _, ok := s.Plants[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Plants, id)
	return nil
}

// MaterializeFromOrder creates one seedling per unit of each plant line,
// at most once per order; later calls return the previously created plants.
func (s *PlantRepositoryStub) MaterializeFromOrder(ctx context.Context, order *model.Order) ([]model.PlantRecord, error) {
	if s.MaterializeFn != nil {
		return s.MaterializeFn(ctx, order)
	}
	if ids, done := s.ByOrder[order.ID]; done {
		var existing []model.PlantRecord
		for _, id := range ids {
			if p, ok := s.Plants[id]; ok {
				existing = append(existing, *p)
			}
		}
		return existing, nil
	}
	var created []model.PlantRecord
	for _, line := range order.Lines {
		if !line.IsPlant {
			continue
		}
		for i := 0; i < line.Quantity; i++ {
			plant := model.PlantRecord{
				AccountID:    order.AccountID,
				ProductID:    line.ProductID,
				Name:         line.Name,
				GrowthStage:  model.StageSeedling,
				HealthStatus: model.HealthGood,
				PurchaseDate: order.UploadedAt,
			}
			plant.ID = s.Add(plant)
			created = append(created, *s.Plants[plant.ID])
			s.ByOrder[order.ID] = append(s.ByOrder[order.ID], plant.ID)
		}
	}
	if s.ByOrder[order.ID] == nil {
		s.ByOrder[order.ID] = []int64{}
	}
	order.PlantsProjected = true
	s.Materialized = append(s.Materialized, order.ID)
	return created, nil
}

// OrderRepositoryStub lets tests customize order persistence behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetFn          func(context.Context, int64) (*model.Order, error)
	ListFn         func(context.Context, int64) ([]model.Order, error)
	FulfilledFn    func(context.Context, int64) ([]model.Order, error)
	SelectBatchFn  func(context.Context, int) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) error

	Created     []model.Order
	Orders      []model.Order
	Processing  []model.Order
	UpdateCalls []OrderStatusCall
	Next        int64
}

// OrderStatusCall stores information about UpdateStatus invocations.
type OrderStatusCall struct {
	OrderID int64
	Status  model.OrderStatus
}

// Create tracks invocations and assigns sequential ids.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *order
	stored.ID = s.Next
	s.Next++
	s.Created = append(s.Created, stored)
	return &stored, nil
}

// GetByID searches both created and configured orders.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, orderID)
	}
	for i := range s.Created {
		if s.Created[i].ID == orderID {
			clone := s.Created[i]
			return &clone, nil
		}
	}
	for i := range s.Orders {
		if s.Orders[i].ID == orderID {
			clone := s.Orders[i]
			return &clone, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByAccount returns configured orders.
func (s *OrderRepositoryStub) ListByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, accountID)
	}
	return s.Orders, nil
}

// ListFulfilledByAccount returns fulfilled orders from the configured slice.
func (s *OrderRepositoryStub) ListFulfilledByAccount(ctx context.Context, accountID int64) ([]model.Order, error) {
	if s.FulfilledFn != nil {
		return s.FulfilledFn(ctx, accountID)
	}
	var result []model.Order
	for _, o := range s.Orders {
		if o.AccountID == accountID && o.Status == model.OrderStatusFulfilled {
			result = append(result, o)
		}
	}
	return result, nil
}

// SelectBatchForProcessing returns queued orders.
func (s *OrderRepositoryStub) SelectBatchForProcessing(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectBatchFn != nil {
		return s.SelectBatchFn(ctx, limit)
	}
	return s.Processing, nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderStatusCall{OrderID: orderID, Status: status})
	return nil
}

// RecyclingRepositoryStub stores submissions for tests.
type RecyclingRepositoryStub struct {
	CreateFn func(context.Context, *model.RecyclingSubmission) (*model.RecyclingSubmission, error)
	ListFn   func(context.Context, int64) ([]model.RecyclingSubmission, error)
	Items    []model.RecyclingSubmission
	Next     int64
}

// Create stores a submission with a sequential id.
func (s *RecyclingRepositoryStub) Create(ctx context.Context, submission *model.RecyclingSubmission) (*model.RecyclingSubmission, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, submission)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *submission
	stored.ID = s.Next
	s.Next++
	s.Items = append(s.Items, stored)
	return &stored, nil
}

// ListByAccount returns stored submissions for the account.
func (s *RecyclingRepositoryStub) ListByAccount(ctx context.Context, accountID int64) ([]model.RecyclingSubmission, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, accountID)
	}
	var result []model.RecyclingSubmission
	for _, item := range s.Items {
		if item.AccountID == accountID {
			result = append(result, item)
		}
	}
	return result, nil
}
