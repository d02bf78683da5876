package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundPercent maps time-until-show to the refund fraction:
//
//	>= 24h          100%
//	>= 12h, < 24h    50%
//	< 12h             0%  (including past showtimes)
//
// Fractions are exact decimals so refunds never pick up binary
// rounding drift.
func RefundPercent(untilShow time.Duration) decimal.Decimal {
	switch {
	case untilShow >= 24*time.Hour:
		return decimal.NewFromInt(1)
	case untilShow >= 12*time.Hour:
		return decimal.New(5, -1)
	default:
		return decimal.Zero
	}
}
