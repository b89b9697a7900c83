package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"gastobot/internal/models"
	"gastobot/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "gastobot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestMembersAndGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("GetOrCreateMember is idempotent", func(t *testing.T) {
		first, err := store.GetOrCreateMember(ctx, storage.MemberIdentity{ChatID: 1, Username: "alice"})
		if err != nil {
			t.Fatalf("GetOrCreateMember failed: %v", err)
		}
		if first.ID == "" {
			t.Error("Expected member ID to be generated")
		}

		second, err := store.GetOrCreateMember(ctx, storage.MemberIdentity{ChatID: 1, Username: "alice"})
		if err != nil {
			t.Fatalf("GetOrCreateMember failed: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("Same chat id produced different members: %s vs %s", second.ID, first.ID)
		}
	})

	t.Run("GetOrCreateGroup is idempotent", func(t *testing.T) {
		first, err := store.GetOrCreateGroup(ctx, storage.GroupIdentity{ChatID: -100, Name: "flat"})
		if err != nil {
			t.Fatalf("GetOrCreateGroup failed: %v", err)
		}
		second, err := store.GetOrCreateGroup(ctx, storage.GroupIdentity{ChatID: -100, Name: "flat"})
		if err != nil {
			t.Fatalf("GetOrCreateGroup failed: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("Same chat id produced different groups: %s vs %s", second.ID, first.ID)
		}
	})

	t.Run("AddMemberToGroup is idempotent", func(t *testing.T) {
		member, err := store.GetOrCreateMember(ctx, storage.MemberIdentity{ChatID: 2, Username: "bob"})
		if err != nil {
			t.Fatalf("GetOrCreateMember failed: %v", err)
		}
		group, err := store.GetOrCreateGroup(ctx, storage.GroupIdentity{ChatID: -200, Name: "trip"})
		if err != nil {
			t.Fatalf("GetOrCreateGroup failed: %v", err)
		}

		for i := 0; i < 2; i++ {
			if err := store.AddMemberToGroup(ctx, member.ID, group.ID); err != nil {
				t.Fatalf("AddMemberToGroup failed: %v", err)
			}
		}

		members, err := store.GroupMembers(ctx, group.ID)
		if err != nil {
			t.Fatalf("GroupMembers failed: %v", err)
		}
		if len(members) != 1 {
			t.Errorf("Expected 1 member, got %d", len(members))
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	member, err := store.GetOrCreateMember(ctx, storage.MemberIdentity{ChatID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("GetOrCreateMember failed: %v", err)
	}
	group, err := store.GetOrCreateGroup(ctx, storage.GroupIdentity{ChatID: -100, Name: "flat"})
	if err != nil {
		t.Fatalf("GetOrCreateGroup failed: %v", err)
	}

	t.Run("CreateExpense round-trips decimals exactly", func(t *testing.T) {
		expense := &models.Expense{
			MemberID:         member.ID,
			GroupID:          group.ID,
			Description:      "coffee",
			Amount:           decimal.RequireFromString("12.34"),
			Date:             date(t, "2024-05-01"),
			OriginalCurrency: "u",
			OriginalAmount:   decimal.RequireFromString("3.526"),
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == "" {
			t.Error("Expected expense ID to be generated")
		}
		if expense.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		expenses, err := store.ExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("Expected 1 expense, got %d", len(expenses))
		}
		got := expenses[0]
		if !got.Amount.Equal(expense.Amount) {
			t.Errorf("Amount = %s, want %s", got.Amount, expense.Amount)
		}
		if got.OriginalCurrency != "u" {
			t.Errorf("OriginalCurrency = %q, want %q", got.OriginalCurrency, "u")
		}
		if !got.OriginalAmount.Equal(expense.OriginalAmount) {
			t.Errorf("OriginalAmount = %s, want %s", got.OriginalAmount, expense.OriginalAmount)
		}
		if !got.Date.Equal(expense.Date) {
			t.Errorf("Date = %v, want %v", got.Date, expense.Date)
		}
	})

	t.Run("ExpensesByGroup orders newest first", func(t *testing.T) {
		other, err := store.GetOrCreateGroup(ctx, storage.GroupIdentity{ChatID: -300, Name: "other"})
		if err != nil {
			t.Fatalf("GetOrCreateGroup failed: %v", err)
		}
		for _, d := range []string{"2024-01-02", "2024-01-01", "2024-01-03"} {
			expense := &models.Expense{
				MemberID:    member.ID,
				GroupID:     other.ID,
				Description: "on " + d,
				Amount:      decimal.NewFromInt(1),
				Date:        date(t, d),
			}
			if err := store.CreateExpense(ctx, expense); err != nil {
				t.Fatalf("CreateExpense failed: %v", err)
			}
		}

		expenses, err := store.ExpensesByGroup(ctx, other.ID)
		if err != nil {
			t.Fatalf("ExpensesByGroup failed: %v", err)
		}
		want := []string{"2024-01-03", "2024-01-02", "2024-01-01"}
		if len(expenses) != len(want) {
			t.Fatalf("Expected %d expenses, got %d", len(want), len(expenses))
		}
		for i, w := range want {
			if got := expenses[i].Date.Format("2006-01-02"); got != w {
				t.Errorf("expense %d date = %s, want %s", i, got, w)
			}
		}
	})
}

func TestTags(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group, err := store.GetOrCreateGroup(ctx, storage.GroupIdentity{ChatID: -100, Name: "flat"})
	if err != nil {
		t.Fatalf("GetOrCreateGroup failed: %v", err)
	}
	other, err := store.GetOrCreateGroup(ctx, storage.GroupIdentity{ChatID: -200, Name: "trip"})
	if err != nil {
		t.Fatalf("GetOrCreateGroup failed: %v", err)
	}

	t.Run("GetOrCreateTag unique per name and group", func(t *testing.T) {
		first, err := store.GetOrCreateTag(ctx, "food", group.ID)
		if err != nil {
			t.Fatalf("GetOrCreateTag failed: %v", err)
		}
		second, err := store.GetOrCreateTag(ctx, "food", group.ID)
		if err != nil {
			t.Fatalf("GetOrCreateTag failed: %v", err)
		}
		if second.ID != first.ID {
			t.Errorf("Same (name, group) produced different tags: %s vs %s", second.ID, first.ID)
		}

		elsewhere, err := store.GetOrCreateTag(ctx, "food", other.ID)
		if err != nil {
			t.Fatalf("GetOrCreateTag failed: %v", err)
		}
		if elsewhere.ID == first.ID {
			t.Error("Tags must be scoped per group")
		}
	})

	t.Run("TagExpense is idempotent", func(t *testing.T) {
		member, err := store.GetOrCreateMember(ctx, storage.MemberIdentity{ChatID: 1, Username: "alice"})
		if err != nil {
			t.Fatalf("GetOrCreateMember failed: %v", err)
		}
		expense := &models.Expense{
			MemberID:    member.ID,
			GroupID:     group.ID,
			Description: "lunch",
			Amount:      decimal.NewFromInt(10),
			Date:        date(t, "2024-05-01"),
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		tag, err := store.GetOrCreateTag(ctx, "food", group.ID)
		if err != nil {
			t.Fatalf("GetOrCreateTag failed: %v", err)
		}
		for i := 0; i < 2; i++ {
			if err := store.TagExpense(ctx, expense.ID, tag.ID); err != nil {
				t.Fatalf("TagExpense failed: %v", err)
			}
		}
	})
}

func TestExchangeRates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("missing rate returns ErrNotFound", func(t *testing.T) {
		_, err := store.LatestExchangeRate(ctx, "u")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("latest rate wins by date regardless of insert order", func(t *testing.T) {
		newer := &models.ExchangeRate{Currency: "u", Rate: decimal.RequireFromString("3.5"), Date: date(t, "2024-03-01")}
		older := &models.ExchangeRate{Currency: "u", Rate: decimal.RequireFromString("3.0"), Date: date(t, "2024-01-01")}
		if err := store.SaveExchangeRate(ctx, newer); err != nil {
			t.Fatalf("SaveExchangeRate failed: %v", err)
		}
		if err := store.SaveExchangeRate(ctx, older); err != nil {
			t.Fatalf("SaveExchangeRate failed: %v", err)
		}

		got, err := store.LatestExchangeRate(ctx, "u")
		if err != nil {
			t.Fatalf("LatestExchangeRate failed: %v", err)
		}
		if !got.Rate.Equal(newer.Rate) {
			t.Errorf("Rate = %s, want %s", got.Rate, newer.Rate)
		}
		if !got.Date.Equal(newer.Date) {
			t.Errorf("Date = %v, want %v", got.Date, newer.Date)
		}
	})

	t.Run("rates are per currency", func(t *testing.T) {
		eur := &models.ExchangeRate{Currency: "eur", Rate: decimal.RequireFromString("4.2"), Date: date(t, "2024-02-01")}
		if err := store.SaveExchangeRate(ctx, eur); err != nil {
			t.Fatalf("SaveExchangeRate failed: %v", err)
		}

		got, err := store.LatestExchangeRate(ctx, "eur")
		if err != nil {
			t.Fatalf("LatestExchangeRate failed: %v", err)
		}
		if got.Currency != "eur" || !got.Rate.Equal(eur.Rate) {
			t.Errorf("got %s=%s, want eur=%s", got.Currency, got.Rate, eur.Rate)
		}
	})
}
