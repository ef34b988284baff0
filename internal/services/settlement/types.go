package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds configuration for settlements
type Config struct {
	// MinWithdrawal is the smallest amount accepted, inclusive.
	MinWithdrawal decimal.Decimal

	// LockTimeout bounds the wait for the user's critical section and for
	// the account row lock together.
	LockTimeout time.Duration
}

// MetricsCollector defines the interface for collecting settlement metrics
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordSettlement(userID uint, amount decimal.Decimal)
	RecordRejection(operation, code string)
}
