// Package service implements the bot's command handlers: recording
// expenses and summarizing them. Handlers return user-displayable text;
// parameter mistakes become chat replies, only collaborator failures
// surface as errors.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gastobot/internal/currency"
	"gastobot/internal/metrics"
	"gastobot/internal/models"
	"gastobot/internal/parser"
	"gastobot/internal/storage"
)

// Bot handles the expense commands for resolved (member, group) contexts.
type Bot struct {
	store  storage.Store
	parser *parser.Parser
}

// New creates a Bot backed by the given store.
func New(store storage.Store) *Bot {
	return &Bot{
		store:  store,
		parser: parser.New(store),
	}
}

// HandleStart greets a member.
func (b *Bot) HandleStart(member *models.Member) string {
	return fmt.Sprintf("Hi %s!", member.Username)
}

// HandleNewExpense parses an expense command and persists the expense.
// Running the same command twice records two expenses: each command is a
// new financial event.
func (b *Bot) HandleNewExpense(ctx context.Context, args []string, member *models.Member, group *models.Group) (string, error) {
	parsed, err := b.parser.Parse(ctx, args, group)
	var perr *parser.ParamError
	if errors.As(err, &perr) {
		metrics.ParamRejections.Inc()
		return perr.Error(), nil
	}
	if err != nil {
		return "", fmt.Errorf("parse expense command: %w", err)
	}

	expense := &models.Expense{
		MemberID:    member.ID,
		GroupID:     group.ID,
		Description: parsed.Description,
		Amount:      parsed.Amount,
		Date:        parsed.Date,
		Tags:        parsed.Tags,
	}

	var reply strings.Builder
	if parsed.Rate != nil {
		expense.OriginalCurrency = parsed.Rate.Currency
		expense.OriginalAmount = parsed.OriginalAmount

		name := parsed.Rate.Currency
		if cur, ok := currency.ByCode(parsed.Rate.Currency); ok {
			name = cur.Name
		}
		fmt.Fprintf(&reply, "Your expense was converted from %s using exchange rate $%s (loaded on %s).\n\n",
			name, parsed.Rate.Rate, parsed.Rate.Date.Format("2006-01-02"))
	}

	if err := b.store.CreateExpense(ctx, expense); err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}
	for _, tag := range parsed.Tags {
		if err := b.store.TagExpense(ctx, expense.ID, tag.ID); err != nil {
			return "", fmt.Errorf("tag expense: %w", err)
		}
	}
	metrics.ExpensesCreated.Inc()

	fmt.Fprintf(&reply, "Saved your expense %s", expense)
	return reply.String(), nil
}
