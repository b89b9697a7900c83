// Package currency holds the table of foreign currencies the amount parser
// can detect. Stored amounts are always in the base currency; these entries
// only exist so a command like "40u" or "usd40" can be converted on the way in.
package currency

import "strings"

// Currency is one detectable foreign currency.
type Currency struct {
	// Code is the short lowercase code users type next to the amount.
	Code string

	// Symbol is the alternative marker accepted in place of the code.
	Symbol string

	// Name is the display name used in conversion notices.
	Name string
}

// Table is the ordered list of known currencies. Detection is first-match,
// so order matters: entries whose code is a prefix of another code must come
// after the longer one ("usd" before "u").
var Table = []Currency{
	{Code: "usd", Symbol: "u$s", Name: "US dollars"},
	{Code: "u", Symbol: "US$", Name: "US dollars"},
	{Code: "eur", Symbol: "€", Name: "euros"},
	{Code: "r", Symbol: "R$", Name: "Brazilian reais"},
}

// Detect reports the first currency whose code or symbol the token starts or
// ends with. Matching is case-sensitive and exact.
func Detect(token string) (Currency, bool) {
	for _, c := range Table {
		if strings.HasPrefix(token, c.Code) || strings.HasPrefix(token, c.Symbol) ||
			strings.HasSuffix(token, c.Code) || strings.HasSuffix(token, c.Symbol) {
			return c, true
		}
	}
	return Currency{}, false
}

// ByCode looks a currency up by its code.
func ByCode(code string) (Currency, bool) {
	for _, c := range Table {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Strip removes every occurrence of the currency's symbol and code from the
// token, leaving the numeric remainder. The symbol goes first because it may
// contain the code ("u$s" contains "u").
func (c Currency) Strip(token string) string {
	token = strings.ReplaceAll(token, c.Symbol, "")
	return strings.ReplaceAll(token, c.Code, "")
}
