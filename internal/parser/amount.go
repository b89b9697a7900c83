package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gastobot/internal/currency"
	"gastobot/internal/models"
	"gastobot/internal/storage"
)

// ParseAmount turns an amount token into a base-currency amount.
//
// A currency is detected when the token starts or ends with a known code or
// symbol; the first entry in the currency table wins. When a currency is
// detected, the latest stored rate converts the amount into the base
// currency and the rate is returned alongside the original amount. A token
// with no currency marker passes through unconverted.
//
// A detected currency with no stored rate is rejected rather than silently
// passed through: the caller could not otherwise tell a missing rate from a
// plain base-currency amount.
func (p *Parser) ParseAmount(ctx context.Context, token string) (amount decimal.Decimal, rate *models.ExchangeRate, original decimal.Decimal, err error) {
	cur, detected := currency.Detect(token)

	remainder := token
	if detected {
		remainder = cur.Strip(token)
	}
	remainder = strings.ReplaceAll(remainder, ",", ".")

	original, convErr := decimal.NewFromString(remainder)
	if convErr != nil {
		return decimal.Zero, nil, decimal.Zero, invalidAmountError(remainder)
	}

	if !detected {
		return original, nil, original, nil
	}

	rate, err = p.dir.LatestExchangeRate(ctx, cur.Code)
	if errors.Is(err, storage.ErrNotFound) {
		return decimal.Zero, nil, decimal.Zero, paramErrorf(
			"I can see a %s amount, but no exchange rate is loaded for %q yet, so I can't convert it.",
			cur.Name, cur.Code)
	}
	if err != nil {
		return decimal.Zero, nil, decimal.Zero, fmt.Errorf("look up exchange rate for %q: %w", cur.Code, err)
	}

	return original.Mul(rate.Rate), rate, original, nil
}

// invalidAmountError explains the amount token format and enumerates every
// known currency code and symbol.
func invalidAmountError(remainder string) *ParamError {
	var b strings.Builder
	b.WriteString("The first value after the command has to be the amount you paid.\n\n")
	b.WriteString("You can also give it in another currency by attaching the code or symbol, ")
	b.WriteString("for example 40u for 40 dollars (or usd40). The known codes are:")
	for _, c := range currency.Table {
		fmt.Fprintf(&b, "\n - %s (%s)", c.Code, c.Symbol)
		fmt.Fprintf(&b, "\n - %s", c.Symbol)
	}
	fmt.Fprintf(&b, "\n\nThe value %q is not a valid number.", remainder)
	return &ParamError{msg: b.String()}
}
