package cache

import (
	"context"

	"usercenter/internal/models"
	"usercenter/internal/repositories"

	"github.com/shopspring/decimal"
)

// Noop is used when no Redis host is configured. Every read misses.
type Noop struct{}

var _ repositories.CacheRepository = Noop{}

func NewNoop() Noop { return Noop{} }

func (Noop) Generation(context.Context, uint) (int64, error) { return 0, nil }

func (Noop) GetBalance(context.Context, uint, int64) (decimal.Decimal, bool, error) {
	return decimal.Zero, false, nil
}

func (Noop) SetBalance(context.Context, uint, int64, decimal.Decimal) error { return nil }

func (Noop) GetWithdrawalPage(context.Context, uint, int64, int, int) (*models.WithdrawalPage, bool, error) {
	return nil, false, nil
}

func (Noop) SetWithdrawalPage(context.Context, uint, int64, *models.WithdrawalPage) error { return nil }

func (Noop) InvalidateUser(context.Context, uint) error { return nil }

func (Noop) Ping(context.Context) error { return nil }
