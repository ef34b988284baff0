package settlement

import (
	"strings"

	domainerrors "usercenter/internal/errors"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a decimal amount string. It rejects anything that is
// not a plain positive number with at most two decimals, or that is below
// min.
func ParseAmount(input string, min decimal.Decimal) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.ContainsAny(input, "eE") {
		return decimal.Zero, domainerrors.ErrValidation
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, domainerrors.ErrValidation
	}
	if !amount.IsPositive() {
		return decimal.Zero, domainerrors.ErrValidation
	}
	if amount.Exponent() < -AmountScale && !amount.Equal(amount.Truncate(AmountScale)) {
		return decimal.Zero, domainerrors.ErrValidation.WithMessage("amount must have at most 2 decimal places")
	}
	if amount.LessThan(min) {
		return decimal.Zero, domainerrors.ErrBelowMinimum.WithMessage("amount must be at least " + min.StringFixed(AmountScale))
	}
	return amount.Truncate(AmountScale), nil
}
