package recycling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainErrors "github.com/verdora/ecotrade/internal/domain/errors"
	"github.com/verdora/ecotrade/internal/domain/model"
	"github.com/verdora/ecotrade/internal/ledger"
	"github.com/verdora/ecotrade/internal/test"
)

func newTestService() (*Service, *test.AccountRepositoryStub, *test.RecyclingRepositoryStub) {
	accounts := test.NewAccountRepositoryStub()
	submissions := &test.RecyclingRepositoryStub{}
	svc := NewService(submissions, ledger.New(accounts))
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, accounts, submissions
}

func TestService_Submit(t *testing.T) {
	tests := []struct {
		name        string
		plasticType model.PlasticType
		weightKg    float64
		wantPoints  int64
	}{
		{"PET two and a half kilos", model.PlasticPET, 2.5, 25},
		{"HDPE one kilo", model.PlasticHDPE, 1, 8},
		{"other plastic rounds", model.PlasticOther, 0.5, 3},
		{"PP fractional", model.PlasticPP, 1.2, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accounts, submissions := newTestService()
			accountID := accounts.Seed("user", 0)

			created, err := svc.Submit(context.Background(), accountID, tt.plasticType, tt.weightKg, "")
			require.NoError(t, err)
			require.Equal(t, tt.wantPoints, created.Points)
			require.NotZero(t, created.ID)

			balance, err := accounts.Balance(context.Background(), accountID)
			require.NoError(t, err)
			require.Equal(t, tt.wantPoints, balance)
			require.Len(t, submissions.Items, 1)
		})
	}
}

func TestService_Submit_InvalidWeight(t *testing.T) {
	svc, accounts, submissions := newTestService()
	accountID := accounts.Seed("user", 50)

	_, err := svc.Submit(context.Background(), accountID, model.PlasticPET, 0, "")
	require.ErrorIs(t, err, domainErrors.ErrInvalidWeight)

	_, err = svc.Submit(context.Background(), accountID, model.PlasticPET, -1.5, "")
	require.ErrorIs(t, err, domainErrors.ErrInvalidWeight)

	balance, err := accounts.Balance(context.Background(), accountID)
	require.NoError(t, err)
	require.Equal(t, int64(50), balance)
	require.Empty(t, submissions.Items)
}

func TestService_Submit_InvalidPlasticType(t *testing.T) {
	svc, accounts, submissions := newTestService()
	accountID := accounts.Seed("user", 0)

	_, err := svc.Submit(context.Background(), accountID, model.PlasticType("STYROFOAM"), 2, "")
	require.ErrorIs(t, err, domainErrors.ErrInvalidPlasticType)
	require.Empty(t, submissions.Items)
}

func TestService_History(t *testing.T) {
	svc, accounts, _ := newTestService()
	accountID := accounts.Seed("user", 0)
	otherID := accounts.Seed("other", 0)

	_, err := svc.Submit(context.Background(), accountID, model.PlasticPET, 1, "bottles")
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), otherID, model.PlasticHDPE, 2, "")
	require.NoError(t, err)

	history, err := svc.History(context.Background(), accountID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, model.PlasticPET, history[0].PlasticType)
	require.Equal(t, "bottles", history[0].Notes)
}
