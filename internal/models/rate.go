package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a dated conversion rate from a foreign currency into the
// base currency. The most recent rate by date wins; there is no interpolation
// and no staleness check.
type ExchangeRate struct {
	// ID is the unique identifier for the rate (UUID format).
	ID string

	// Currency is the currency code this rate converts from.
	Currency string

	// Rate multiplies a foreign amount into the base currency.
	Rate decimal.Decimal

	// Date is the day the rate is effective for.
	Date time.Time

	// CreatedAt is the Unix timestamp when the rate was loaded.
	CreatedAt int64
}
