package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordSettlement(uint, decimal.Decimal)        {}
func (n *NoopMetricsCollector) RecordRejection(string, string)                {}
