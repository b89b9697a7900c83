// Package parser turns the token sequence of an expense command into
// validated expense fields.
//
// The command shape is:
//
//	<amount> [dd <date>] [tt <tag,tag,...>] <description...>
//
// The first token is always the amount, possibly with a currency marker.
// The dd and tt modifiers are recognized anywhere after it; each consumes
// the token that follows it. Whatever remains is the description.
package parser

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gastobot/internal/models"
)

// dateLayout accepts dates like 28/01/99.
const dateLayout = "02/01/06"

// modifiers lists the special keywords in extraction order, each with the
// help text returned when its value is missing.
var modifiers = []struct {
	keyword string
	help    string
}{
	{
		keyword: "dd",
		help:    `Put the date the expense happened right after "dd", formatted dd/mm/yy (for example 28/01/99).`,
	},
	{
		keyword: "tt",
		help:    `Put the tag name (or names) for the expense right after "tt". You can give more than one tag by separating the names with commas (no spaces).`,
	},
}

// Directory provides the lookups parsing depends on: exchange rates for
// currency conversion and get-or-create tags. storage.Store satisfies it.
type Directory interface {
	LatestExchangeRate(ctx context.Context, code string) (*models.ExchangeRate, error)
	GetOrCreateTag(ctx context.Context, name, groupID string) (*models.Tag, error)
}

// ParsedExpense bundles the validated fields of one expense command.
type ParsedExpense struct {
	// Amount is the expense amount in the base currency.
	Amount decimal.Decimal

	// Rate is the exchange rate used for conversion, nil when the amount
	// was given in the base currency.
	Rate *models.ExchangeRate

	// OriginalAmount is the amount before conversion. Equal to Amount
	// when Rate is nil.
	OriginalAmount decimal.Decimal

	// Description is the remaining tokens joined with single spaces.
	Description string

	// Date is the expense's calendar day.
	Date time.Time

	// Tags are the resolved tags, empty when tt was not given.
	Tags []models.Tag
}

// Parser parses expense commands.
type Parser struct {
	dir Directory
	now func() time.Time
}

// New creates a Parser backed by the given directory.
func New(dir Directory) *Parser {
	return &Parser{dir: dir, now: time.Now}
}

// Parse validates the token sequence of an expense command for a group.
// All user mistakes come back as *ParamError; any other error is a
// collaborator failure.
func (p *Parser) Parse(ctx context.Context, tokens []string, group *models.Group) (*ParsedExpense, error) {
	if len(tokens) == 0 {
		return nil, paramErrorf("I need the amount you paid and a description of the expense.")
	}

	amount, rate, original, err := p.ParseAmount(ctx, tokens[0])
	if err != nil {
		return nil, err
	}

	rest := slices.Clone(tokens[1:])
	values := make(map[string]string, len(modifiers))
	for _, m := range modifiers {
		idx := slices.Index(rest, m.keyword)
		if idx < 0 {
			continue
		}
		if idx == len(rest)-1 {
			return nil, paramErrorf("%s", m.help)
		}
		values[m.keyword] = rest[idx+1]
		rest = append(rest[:idx], rest[idx+2:]...)
	}

	if len(rest) == 0 {
		return nil, paramErrorf("I need a description of the expense in the command.")
	}
	description := strings.Join(rest, " ")

	date := dateOnly(p.now())
	if v, ok := values["dd"]; ok {
		date, err = time.Parse(dateLayout, v)
		if err != nil {
			return nil, paramErrorf("%s", modifiers[0].help)
		}
	}

	var tags []models.Tag
	if v, ok := values["tt"]; ok {
		// Each comma-separated name resolves to its own tag.
		for _, name := range strings.Split(v, ",") {
			tag, err := p.dir.GetOrCreateTag(ctx, name, group.ID)
			if err != nil {
				return nil, fmt.Errorf("resolve tag %q: %w", name, err)
			}
			tags = append(tags, *tag)
		}
	}

	return &ParsedExpense{
		Amount:         amount,
		Rate:           rate,
		OriginalAmount: original,
		Description:    description,
		Date:           date,
		Tags:           tags,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
