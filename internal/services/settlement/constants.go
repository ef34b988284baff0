package settlement

import "time"

// Default configuration values
const (
	DefaultMinWithdrawal = 100
	DefaultLockTimeout   = 5 * time.Second
	AmountScale          = 2
)

// Metric operation names
const (
	OperationWithdraw = "withdraw"
)
