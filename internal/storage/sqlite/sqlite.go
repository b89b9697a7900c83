// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"gastobot/internal/models"
	"gastobot/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// dateFormat is how calendar dates are stored. The format sorts
// lexicographically, which the descending-date queries rely on.
const dateFormat = "2006-01-02"

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetOrCreateMember returns the member with the given chat id, inserting a
// new row the first time the sender is seen.
func (s *SQLiteStore) GetOrCreateMember(ctx context.Context, identity storage.MemberIdentity) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, chat_id, username, first_name, last_name, created_at FROM members WHERE chat_id = ?",
		identity.ChatID,
	).Scan(&member.ID, &member.ChatID, &member.Username, &member.FirstName, &member.LastName, &member.CreatedAt)
	if err == nil {
		return member, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	member = &models.Member{
		ID:        uuid.New().String(),
		ChatID:    identity.ChatID,
		Username:  identity.Username,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		CreatedAt: time.Now().Unix(),
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO members (id, chat_id, username, first_name, last_name, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		member.ID, member.ChatID, member.Username, member.FirstName, member.LastName, member.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}
	return member, nil
}

// GetOrCreateGroup returns the group with the given chat id, inserting a new
// row the first time the chat is seen.
func (s *SQLiteStore) GetOrCreateGroup(ctx context.Context, identity storage.GroupIdentity) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, chat_id, name, created_at FROM groups WHERE chat_id = ?",
		identity.ChatID,
	).Scan(&group.ID, &group.ChatID, &group.Name, &group.CreatedAt)
	if err == nil {
		return group, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	group = &models.Group{
		ID:        uuid.New().String(),
		ChatID:    identity.ChatID,
		Name:      identity.Name,
		CreatedAt: time.Now().Unix(),
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO groups (id, chat_id, name, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.ChatID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert group: %w", err)
	}
	return group, nil
}

// AddMemberToGroup associates a member with a group.
func (s *SQLiteStore) AddMemberToGroup(ctx context.Context, memberID, groupID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO group_members (group_id, member_id) VALUES (?, ?)",
		groupID, memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to add member to group: %w", err)
	}
	return nil
}

// GroupMembers lists a group's members, oldest first.
func (s *SQLiteStore) GroupMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.chat_id, m.username, m.first_name, m.last_name, m.created_at
		 FROM members m
		 JOIN group_members gm ON gm.member_id = m.id
		 WHERE gm.group_id = ?
		 ORDER BY m.created_at, m.id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.ChatID, &m.Username, &m.FirstName, &m.LastName, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	var originalCurrency, originalAmount sql.NullString
	if expense.OriginalCurrency != "" {
		originalCurrency = sql.NullString{String: expense.OriginalCurrency, Valid: true}
		originalAmount = sql.NullString{String: expense.OriginalAmount.String(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, member_id, group_id, description, amount, date, original_currency, original_amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.MemberID, expense.GroupID, expense.Description,
		expense.Amount.String(), expense.Date.Format(dateFormat),
		originalCurrency, originalAmount, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// TagExpense attaches a tag to an expense.
func (s *SQLiteStore) TagExpense(ctx context.Context, expenseID, tagID string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO expense_tags (expense_id, tag_id) VALUES (?, ?)",
		expenseID, tagID,
	)
	if err != nil {
		return fmt.Errorf("failed to tag expense: %w", err)
	}
	return nil
}

// ExpensesByGroup lists a group's expenses newest first. Ties on the same
// date break on insert time so the oldest expense stays at the tail.
func (s *SQLiteStore) ExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, group_id, description, amount, date, original_currency, original_amount, created_at
		 FROM expenses
		 WHERE group_id = ?
		 ORDER BY date DESC, created_at DESC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var (
			e                models.Expense
			amount, date     string
			origCur, origAmt sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.MemberID, &e.GroupID, &e.Description, &amount, &date, &origCur, &origAmt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
		}
		if e.Date, err = time.Parse(dateFormat, date); err != nil {
			return nil, fmt.Errorf("failed to parse stored date %q: %w", date, err)
		}
		if origCur.Valid {
			e.OriginalCurrency = origCur.String
			if e.OriginalAmount, err = decimal.NewFromString(origAmt.String); err != nil {
				return nil, fmt.Errorf("failed to parse stored original amount %q: %w", origAmt.String, err)
			}
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// GetOrCreateTag returns the tag with the given name in the group, inserting
// a new row the first time the name is used.
func (s *SQLiteStore) GetOrCreateTag(ctx context.Context, name, groupID string) (*models.Tag, error) {
	tag := &models.Tag{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, group_id, created_at FROM tags WHERE name = ? AND group_id = ?",
		name, groupID,
	).Scan(&tag.ID, &tag.Name, &tag.GroupID, &tag.CreatedAt)
	if err == nil {
		return tag, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	tag = &models.Tag{
		ID:        uuid.New().String(),
		Name:      name,
		GroupID:   groupID,
		CreatedAt: time.Now().Unix(),
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO tags (id, name, group_id, created_at) VALUES (?, ?, ?, ?)",
		tag.ID, tag.Name, tag.GroupID, tag.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", err)
	}
	return tag, nil
}

// LatestExchangeRate returns the most recent stored rate for a currency code.
func (s *SQLiteStore) LatestExchangeRate(ctx context.Context, code string) (*models.ExchangeRate, error) {
	var (
		rate    models.ExchangeRate
		rateStr string
		dateStr string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, currency, rate, date, created_at
		 FROM exchange_rates
		 WHERE currency = ?
		 ORDER BY date DESC, created_at DESC
		 LIMIT 1`,
		code,
	).Scan(&rate.ID, &rate.Currency, &rateStr, &dateStr, &rate.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate: %w", err)
	}
	if rate.Rate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("failed to parse stored rate %q: %w", rateStr, err)
	}
	if rate.Date, err = time.Parse(dateFormat, dateStr); err != nil {
		return nil, fmt.Errorf("failed to parse stored rate date %q: %w", dateStr, err)
	}
	return &rate, nil
}

// SaveExchangeRate persists a new exchange rate.
func (s *SQLiteStore) SaveExchangeRate(ctx context.Context, rate *models.ExchangeRate) error {
	if rate.ID == "" {
		rate.ID = uuid.New().String()
	}
	if rate.CreatedAt == 0 {
		rate.CreatedAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO exchange_rates (id, currency, rate, date, created_at) VALUES (?, ?, ?, ?, ?)",
		rate.ID, rate.Currency, rate.Rate.String(), rate.Date.Format(dateFormat), rate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert exchange rate: %w", err)
	}
	return nil
}
