package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"gastobot/internal/models"
)

const noExpensesMessage = "There are no expenses recorded in this group yet."

var hundred = decimal.NewFromInt(100)

// HandleReport summarizes a group's expenses: the date range, the total,
// and one line per member with their subtotal and share. Groups with a
// single member get the total only.
func (b *Bot) HandleReport(ctx context.Context, group *models.Group) (string, error) {
	expenses, err := b.store.ExpensesByGroup(ctx, group.ID)
	if err != nil {
		return "", fmt.Errorf("load expenses: %w", err)
	}
	if len(expenses) == 0 {
		return noExpensesMessage, nil
	}

	// The query returns newest first, so the oldest expense is the tail.
	first := expenses[len(expenses)-1]

	total := decimal.Zero
	byMember := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		total = total.Add(e.Amount)
		byMember[e.MemberID] = byMember[e.MemberID].Add(e.Amount)
	}

	var reply strings.Builder
	fmt.Fprintf(&reply, "Expenses from %s until now", first.Date.Format("2006-01-02"))
	fmt.Fprintf(&reply, "\n\nTotal: $%s\n", total.StringFixed(2))

	members, err := b.store.GroupMembers(ctx, group.ID)
	if err != nil {
		return "", fmt.Errorf("load group members: %w", err)
	}
	if len(members) <= 1 {
		return reply.String(), nil
	}

	for _, m := range members {
		subtotal := byMember[m.ID]
		fmt.Fprintf(&reply, "\n\n%s: $%s", m.Username, subtotal.StringFixed(2))
		// A zero total with several members would divide by zero.
		if !total.IsZero() {
			share := subtotal.Div(total).Mul(hundred).Round(0)
			fmt.Fprintf(&reply, " (%s%%)", share)
		}
	}
	return reply.String(), nil
}
