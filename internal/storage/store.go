// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"gastobot/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// MemberIdentity is what the chat transport knows about a sender.
type MemberIdentity struct {
	ChatID    int64
	Username  string
	FirstName string
	LastName  string
}

// GroupIdentity is what the chat transport knows about a chat.
type GroupIdentity struct {
	ChatID int64
	Name   string
}

// Store defines the persistence operations the bot depends on.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// GetOrCreateMember returns the member with the given chat identity,
	// creating it on first sight.
	GetOrCreateMember(ctx context.Context, identity MemberIdentity) (*models.Member, error)

	// GetOrCreateGroup returns the group with the given chat identity,
	// creating it on first sight.
	GetOrCreateGroup(ctx context.Context, identity GroupIdentity) (*models.Group, error)

	// AddMemberToGroup associates a member with a group. Adding an
	// existing association is a no-op.
	AddMemberToGroup(ctx context.Context, memberID, groupID string) error

	// GroupMembers lists a group's members, oldest first.
	GroupMembers(ctx context.Context, groupID string) ([]models.Member, error)

	// CreateExpense persists a new expense. ID and CreatedAt are
	// populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// TagExpense attaches a tag to an expense. Attaching an already
	// attached tag is a no-op.
	TagExpense(ctx context.Context, expenseID, tagID string) error

	// ExpensesByGroup lists a group's expenses in descending date order
	// (newest first). The report aggregator relies on this ordering to
	// find the oldest expense at the tail.
	ExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// GetOrCreateTag returns the tag with the given name in the group,
	// creating it on first use.
	GetOrCreateTag(ctx context.Context, name, groupID string) (*models.Tag, error)

	// LatestExchangeRate returns the most recent stored rate for a
	// currency code, or ErrNotFound when none is loaded.
	LatestExchangeRate(ctx context.Context, code string) (*models.ExchangeRate, error)

	// SaveExchangeRate persists a new exchange rate. ID and CreatedAt
	// are populated by the store.
	SaveExchangeRate(ctx context.Context, rate *models.ExchangeRate) error

	// Close releases any resources held by the store.
	Close() error
}
