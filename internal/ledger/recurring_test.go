package ledger

import (
	"testing"

	"caixa/internal/core"
)

func TestExpandRecurring(t *testing.T) {
	base := tx("2024-01-15", core.Expense, "Rent", 1200)
	base.Description = "office rent"

	got, err := ExpandRecurring(base, 3)
	if err != nil {
		t.Fatalf("ExpandRecurring: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(got))
	}

	wantDates := []string{"2024-01-15", "2024-02-15", "2024-03-15"}
	for i, w := range wantDates {
		if got[i].Date.Format("2006-01-02") != w {
			t.Errorf("occurrence %d date = %s, want %s", i, got[i].Date.Format("2006-01-02"), w)
		}
	}
	if got[0].Description != "office rent" {
		t.Errorf("first occurrence keeps the base description, got %q", got[0].Description)
	}
	if got[1].Description != "office rent (M2/3)" || got[2].Description != "office rent (M3/3)" {
		t.Errorf("lineage suffix wrong: %q, %q", got[1].Description, got[2].Description)
	}
	for i, g := range got {
		if g.Amount != 1200 || g.Category != "Rent" || g.Type != core.Expense {
			t.Errorf("occurrence %d lost fields: %+v", i, g)
		}
	}
}

func TestExpandRecurringSingleMonth(t *testing.T) {
	base := tx("2024-01-15", core.Income, "Sales", 100)

	got, err := ExpandRecurring(base, 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("got %d, %v", len(got), err)
	}
	if got[0].Description != base.Description {
		t.Fatalf("single occurrence must not be suffixed: %q", got[0].Description)
	}
}

func TestExpandRecurringClampsMonthEnd(t *testing.T) {
	base := tx("2024-01-31", core.Expense, "Rent", 100)

	got, err := ExpandRecurring(base, 3)
	if err != nil {
		t.Fatalf("ExpandRecurring: %v", err)
	}
	// 2024 is a leap year.
	if got[1].Date.Format("2006-01-02") != "2024-02-29" {
		t.Errorf("february occurrence = %s, want 2024-02-29", got[1].Date.Format("2006-01-02"))
	}
	if got[2].Date.Format("2006-01-02") != "2024-03-31" {
		t.Errorf("march occurrence = %s, want 2024-03-31", got[2].Date.Format("2006-01-02"))
	}
}

func TestExpandRecurringRejectsBadInput(t *testing.T) {
	base := tx("2024-01-15", core.Expense, "Rent", 100)

	if _, err := ExpandRecurring(base, 0); err != core.ErrNegativeMonths {
		t.Fatalf("expected ErrNegativeMonths, got %v", err)
	}

	bad := base
	bad.Type = "Transfer"
	if _, err := ExpandRecurring(bad, 2); err != core.ErrInvalidType {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}
