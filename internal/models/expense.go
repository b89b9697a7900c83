package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one recorded expense. Amount is always denominated in the base
// currency; OriginalCurrency and OriginalAmount are set together when the
// command gave the amount in a foreign currency, and empty otherwise.
//
// Expenses are immutable once saved. Two identical commands create two
// expenses on purpose: each command is a new financial event.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// MemberID is the member who paid.
	MemberID string

	// GroupID is the group the expense belongs to.
	GroupID string

	// Description is the free-text description from the command.
	Description string

	// Amount is the expense amount in the base currency.
	Amount decimal.Decimal

	// Date is the calendar day of the expense.
	Date time.Time

	// OriginalCurrency is the currency code the amount was given in,
	// empty when the command used the base currency.
	OriginalCurrency string

	// OriginalAmount is the amount before conversion. Only meaningful
	// when OriginalCurrency is set.
	OriginalAmount decimal.Decimal

	// Tags are the labels attached to this expense.
	Tags []Tag

	// CreatedAt is the Unix timestamp when the expense was saved.
	CreatedAt int64
}

// String renders the expense the way confirmations show it.
func (e *Expense) String() string {
	return fmt.Sprintf("$%s %s (%s)", e.Amount.StringFixed(2), e.Description, e.Date.Format("2006-01-02"))
}
