package verification

import (
	"context"
	"testing"

	domainerrors "usercenter/internal/errors"
	"usercenter/internal/models"
	"usercenter/internal/repositories/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validInput = CertificationInput{
	RealName:      "Wang Fang",
	IDCardNumber:  "110101199003074514",
	PayoutName:    "Wang Fang",
	PayoutAccount: "wangfang@example.com",
}

func newStore(t *testing.T, status models.VerificationStatus) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Accounts().Create(context.Background(), &models.Account{
		UserID:             1,
		Balance:            decimal.NewFromInt(500),
		VerificationStatus: status,
	}))
	return store
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	store := newStore(t, models.VerificationPassed)
	svc := NewService(store)

	status, err := svc.Verify(ctx, store, 1)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPassed, status)

	t.Run("missing account is unverified", func(t *testing.T) {
		status, err := svc.Verify(ctx, nil, 99)
		require.NoError(t, err)
		assert.Equal(t, models.VerificationUnverified, status)
	})

	t.Run("submitted is not passed", func(t *testing.T) {
		store := newStore(t, models.VerificationSubmitted)
		status, err := NewService(store).Verify(ctx, nil, 1)
		require.NoError(t, err)
		assert.Equal(t, models.VerificationSubmitted, status)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Accounts().Create(ctx, &models.Account{
		UserID:             1,
		VerificationStatus: models.VerificationPassed,
		PayoutName:         "Wang Fang",
		PayoutAccount:      "wangfang@example.com",
	}))
	svc := NewService(store)

	cert, err := svc.Profile(ctx, store, 1)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPassed, cert.Status)
	assert.Equal(t, "wangfang@example.com", cert.PayoutAccount)

	_, err = svc.Profile(ctx, nil, 2)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name     string
		status   models.VerificationStatus
		userID   uint
		input    CertificationInput
		wantCode string
	}{
		{name: "unverified user submits", status: models.VerificationUnverified, userID: 1, input: validInput},
		{name: "rejected user resubmits", status: models.VerificationRejected, userID: 1, input: validInput},
		{name: "passed profile is frozen", status: models.VerificationPassed, userID: 1, input: validInput, wantCode: domainerrors.CodeAlreadyVerified},
		{name: "unknown account", status: models.VerificationUnverified, userID: 2, input: validInput, wantCode: domainerrors.CodeAccountNotFound},
		{
			name:     "blank payout account",
			status:   models.VerificationUnverified,
			userID:   1,
			input:    CertificationInput{RealName: "Wang Fang", IDCardNumber: "110101199003074514", PayoutName: "Wang Fang", PayoutAccount: "   "},
			wantCode: domainerrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t, tt.status)
			svc := NewService(store)

			cert, err := svc.Submit(ctx, tt.userID, tt.input)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, domainerrors.CodeOf(err))
				account, _ := store.Snapshot(1)
				assert.Equal(t, tt.status, account.VerificationStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.VerificationSubmitted, cert.Status)

			got, err := svc.Get(ctx, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, cert, got)
		})
	}
}

func TestGetUnknownAccount(t *testing.T) {
	svc := NewService(memory.NewStore())

	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}
