package plant_test

import (
	"context"
	"testing"
	"time"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/ledger"
	"github.com/verdora/ecotrade/internal/plant"
	testhelpers "github.com/verdora/ecotrade/internal/test"
)

func newTestLifecycle(t *testing.T, now time.Time) (*plant.Lifecycle, *testhelpers.PlantRepositoryStub, *testhelpers.OrderRepositoryStub, *testhelpers.AccountRepositoryStub, int64) {
	t.Helper()
	plants := testhelpers.NewPlantRepositoryStub()
	orders := &testhelpers.OrderRepositoryStub{}
	accounts := testhelpers.NewAccountRepositoryStub()
	accountID := accounts.Seed("gardener", 0)

	l := plant.NewLifecycle(plants, orders, ledger.New(accounts))
	l.SetNowForTest(func() time.Time { return now })
	return l, plants, orders, accounts, accountID
}

func TestWaterTooSoon(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	l, plants, _, _, accountID := newTestLifecycle(t, now)

	lastWatered := now.AddDate(0, 0, -2)
	id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "fern", LastWatered: &lastWatered})

	if _, err := l.Water(context.Background(), accountID, id); err != domainErrors.ErrTooSoon {
		t.Fatalf("expected too soon, got %v", err)
	}

	stored, _ := plants.GetByID(context.Background(), id)
	if !stored.LastWatered.Equal(lastWatered) {
		t.Fatal("rejected watering must not touch the plant")
	}
}

func TestWaterInBonusWindow(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	l, plants, _, accounts, accountID := newTestLifecycle(t, now)

	lastWatered := now.AddDate(0, 0, -6)
	id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "fern", LastWatered: &lastWatered})

	result, err := l.Water(context.Background(), accountID, id)
	if err != nil {
		t.Fatalf("water failed: %v", err)
	}
	if !result.BonusApplied {
		t.Fatal("expected bonus inside the [5,9] window")
	}
	if result.PointsAwarded != 5 {
		t.Fatalf("expected 5 points (base 3 + bonus 2), got %d", result.PointsAwarded)
	}
	if !result.Plant.LastWatered.Equal(now) {
		t.Fatalf("expected lastWatered=now, got %v", result.Plant.LastWatered)
	}

	balance, _ := accounts.Balance(context.Background(), accountID)
	if balance != 5 {
		t.Fatalf("expected 5 points credited, got %d", balance)
	}
}

func TestWaterOverdueWithoutBonus(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	l, plants, _, accounts, accountID := newTestLifecycle(t, now)

	lastWatered := now.AddDate(0, 0, -12)
	id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "fern", LastWatered: &lastWatered})

	result, err := l.Water(context.Background(), accountID, id)
	if err != nil {
		t.Fatalf("water failed: %v", err)
	}
	if result.BonusApplied {
		t.Fatal("no bonus past day 9")
	}
	if result.PointsAwarded != 3 {
		t.Fatalf("expected base 3 points, got %d", result.PointsAwarded)
	}

	balance, _ := accounts.Balance(context.Background(), accountID)
	if balance != 3 {
		t.Fatalf("expected 3 points credited, got %d", balance)
	}
}

func TestFertilizeWindows(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	cases := []struct {
		name       string
		daysAgo    int
		wantErr    error
		wantPoints int64
	}{
		{"inside floor", 10, domainErrors.ErrTooSoon, 0},
		{"between floor and window", 22, nil, 5},
		{"in bonus window", 30, nil, 10},
		{"overdue", 40, nil, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, plants, _, _, accountID := newTestLifecycle(t, now)
			last := now.AddDate(0, 0, -tc.daysAgo)
			id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "ficus", LastFertilized: &last})

			result, err := l.Fertilize(ctx, accountID, id)
			if tc.wantErr != nil {
				if err != tc.wantErr {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("fertilize failed: %v", err)
			}
			if result.PointsAwarded != tc.wantPoints {
				t.Fatalf("expected %d points, got %d", tc.wantPoints, result.PointsAwarded)
			}
		})
	}
}

func TestRecordMaintenanceGenericTypes(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	ctx := context.Background()

	cases := []struct {
		kind   model.MaintenanceType
		points int64
	}{
		{model.MaintenancePrune, 5},
		{model.MaintenanceRepot, 15},
		{model.MaintenanceOther, 2},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			l, plants, _, _, accountID := newTestLifecycle(t, now)
			// Recent watering must not block non-water maintenance.
			watered := now.AddDate(0, 0, -1)
			id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "ivy", LastWatered: &watered})

			result, err := l.RecordMaintenance(ctx, accountID, model.MaintenanceEvent{PlantID: id, Type: tc.kind})
			if err != nil {
				t.Fatalf("maintenance failed: %v", err)
			}
			if result.PointsAwarded != tc.points {
				t.Fatalf("expected %d points, got %d", tc.points, result.PointsAwarded)
			}
		})
	}
}

func TestRecordMaintenanceHeightGrowth(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	l, plants, _, _, accountID := newTestLifecycle(t, now)

	prev := 10.0
	id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "ivy", HeightCm: &prev})

	next := 13.0
	result, err := l.RecordMaintenance(context.Background(), accountID, model.MaintenanceEvent{
		PlantID:  id,
		Type:     model.MaintenancePrune,
		HeightCm: &next,
	})
	if err != nil {
		t.Fatalf("maintenance failed: %v", err)
	}
	// Prune 5 + growth 3cm*2 = 11.
	if result.PointsAwarded != 11 {
		t.Fatalf("expected 11 points, got %d", result.PointsAwarded)
	}
	if result.Plant.HeightCm == nil || *result.Plant.HeightCm != 13 {
		t.Fatalf("expected height updated to 13, got %v", result.Plant.HeightCm)
	}
}

func TestRecordMaintenanceRejectsUnknownType(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	l, plants, _, _, accountID := newTestLifecycle(t, now)
	id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "ivy"})

	_, err := l.RecordMaintenance(context.Background(), accountID, model.MaintenanceEvent{PlantID: id, Type: "trim"})
	if err != domainErrors.ErrInvalidMaintenanceType {
		t.Fatalf("expected invalid maintenance type, got %v", err)
	}
}

func TestAdvanceStageMonotonic(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	l, plants, _, _, accountID := newTestLifecycle(t, now)
	id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "oak", GrowthStage: model.StageSeedling})
	ctx := context.Background()

	want := []model.GrowthStage{model.StageYoungPlant, model.StageMaturePlant, model.StageFullyGrown, model.StageFullyGrown}
	for _, stage := range want {
		p, err := l.AdvanceStage(ctx, accountID, id)
		if err != nil {
			t.Fatalf("advance failed: %v", err)
		}
		if p.GrowthStage != stage {
			t.Fatalf("expected stage %s, got %s", stage, p.GrowthStage)
		}
	}
}

func TestSetHealthValidation(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	l, plants, _, _, accountID := newTestLifecycle(t, now)
	id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "oak", HealthStatus: model.HealthGood})
	ctx := context.Background()

	p, err := l.SetHealth(ctx, accountID, id, model.HealthPoor)
	if err != nil {
		t.Fatalf("set health failed: %v", err)
	}
	if p.HealthStatus != model.HealthPoor {
		t.Fatalf("expected Poor, got %s", p.HealthStatus)
	}

	if _, err := l.SetHealth(ctx, accountID, id, "Thriving"); err != domainErrors.ErrInvalidHealthStatus {
		t.Fatalf("expected invalid health status, got %v", err)
	}
}

func TestDeleteAndOwnership(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	l, plants, _, accounts, accountID := newTestLifecycle(t, now)
	stranger := accounts.Seed("stranger", 0)
	id := plants.Add(model.PlantRecord{AccountID: accountID, Name: "oak"})
	ctx := context.Background()

	if err := l.Delete(ctx, stranger, id); err != domainErrors.ErrNotFound {
		t.Fatalf("foreign plant must look not found, got %v", err)
	}
	if err := l.Delete(ctx, accountID, id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := l.Delete(ctx, accountID, id); err != domainErrors.ErrNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestListForAccountMergesSources(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	l, plants, orders, _, accountID := newTestLifecycle(t, now)
	ctx := context.Background()

	plants.Add(model.PlantRecord{AccountID: accountID, Name: "store fern"})
	orders.Orders = []model.Order{{
		ID:        7,
		AccountID: accountID,
		Status:    model.OrderStatusFulfilled,
		Lines: []model.OrderLine{
			{ProductID: 3, Name: "monstera", Quantity: 2, IsPlant: true},
			{ProductID: 4, Name: "watering can", Quantity: 1},
		},
		UploadedAt: now,
	}}

	got, err := l.ListForAccount(ctx, accountID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// 1 direct + 2 projected monstera units, nothing for the non-plant line.
	if len(got) != 3 {
		t.Fatalf("expected 3 plants, got %d", len(got))
	}

	seen := make(map[int64]bool)
	for _, p := range got {
		if seen[p.ID] {
			t.Fatalf("duplicate plant id %d", p.ID)
		}
		seen[p.ID] = true
	}

	// A second listing must not project again.
	again, err := l.ListForAccount(ctx, accountID)
	if err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if len(again) != 3 {
		t.Fatalf("expected stable 3 plants, got %d", len(again))
	}
}
