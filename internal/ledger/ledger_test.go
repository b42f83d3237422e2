package ledger_test

import (
	"context"
	"testing"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/ledger"
	testhelpers "github.com/verdora/ecotrade/internal/test"
)

func TestLedgerEarnAndSpend(t *testing.T) {
	accounts := testhelpers.NewAccountRepositoryStub()
	id := accounts.Seed("eco", 0)
	l := ledger.New(accounts)
	ctx := context.Background()

	if err := l.Earn(ctx, id, 100); err != nil {
		t.Fatalf("earn failed: %v", err)
	}
	if err := l.Spend(ctx, id, 40); err != nil {
		t.Fatalf("spend failed: %v", err)
	}

	balance, err := l.Balance(ctx, id)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 60 {
		t.Fatalf("expected balance 60, got %d", balance)
	}
}

func TestLedgerSpendOverdraftLeavesBalanceUnchanged(t *testing.T) {
	accounts := testhelpers.NewAccountRepositoryStub()
	id := accounts.Seed("eco", 30)
	l := ledger.New(accounts)
	ctx := context.Background()

	if err := l.Spend(ctx, id, 31); err != domainErrors.ErrInsufficientPoints {
		t.Fatalf("expected insufficient points, got %v", err)
	}

	balance, _ := l.Balance(ctx, id)
	if balance != 30 {
		t.Fatalf("expected untouched balance 30, got %d", balance)
	}
}

func TestLedgerRejectsNegativeAmounts(t *testing.T) {
	accounts := testhelpers.NewAccountRepositoryStub()
	id := accounts.Seed("eco", 10)
	l := ledger.New(accounts)
	ctx := context.Background()

	if err := l.Earn(ctx, id, -1); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount on earn, got %v", err)
	}
	if err := l.Spend(ctx, id, -1); err != domainErrors.ErrInvalidAmount {
		t.Fatalf("expected invalid amount on spend, got %v", err)
	}
}

func TestLedgerZeroAmountIsNoOp(t *testing.T) {
	called := false
	accounts := testhelpers.NewAccountRepositoryStub()
	id := accounts.Seed("eco", 10)
	accounts.EarnFn = func(context.Context, int64, int64) error {
		called = true
		return nil
	}
	accounts.SpendFn = func(context.Context, int64, int64) error {
		called = true
		return nil
	}

	l := ledger.New(accounts)
	ctx := context.Background()
	if err := l.Earn(ctx, id, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Spend(ctx, id, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatal("zero amounts must not hit the store")
	}
}

func TestLedgerNeverNegativeOverSequence(t *testing.T) {
	accounts := testhelpers.NewAccountRepositoryStub()
	id := accounts.Seed("eco", 0)
	l := ledger.New(accounts)
	ctx := context.Background()

	ops := []struct {
		earn   int64
		spend  int64
		expect int64
	}{
		{earn: 10, expect: 10},
		{spend: 4, expect: 6},
		{spend: 100, expect: 6}, // rejected, unchanged
		{earn: 0, expect: 6},
		{spend: 6, expect: 0},
		{spend: 1, expect: 0}, // rejected, unchanged
	}

	for i, op := range ops {
		if op.earn > 0 {
			if err := l.Earn(ctx, id, op.earn); err != nil {
				t.Fatalf("step %d: earn failed: %v", i, err)
			}
		}
		if op.spend > 0 {
			err := l.Spend(ctx, id, op.spend)
			balance, _ := l.Balance(ctx, id)
			if err != nil && err != domainErrors.ErrInsufficientPoints {
				t.Fatalf("step %d: unexpected error %v", i, err)
			}
			if balance < 0 {
				t.Fatalf("step %d: balance went negative: %d", i, balance)
			}
		}
		balance, _ := l.Balance(ctx, id)
		if balance != op.expect {
			t.Fatalf("step %d: expected balance %d, got %d", i, op.expect, balance)
		}
	}
}
