package core

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01", "2024-01", true},
		{"2024/01", "2024-01", true},
		{" 2024-07 ", "2024-07", true},
		{"2024-07-15", "2024-07", true},
		{"2024", "", false},
		{"garbage", "", false},
		{"", "", false},
		{"2024-13", "", false},
	}
	for _, c := range cases {
		got, err := ParsePeriod(c.in)
		if c.ok {
			if err != nil {
				t.Errorf("ParsePeriod(%q) error: %v", c.in, err)
				continue
			}
			if got.String() != c.want {
				t.Errorf("ParsePeriod(%q) = %s, want %s", c.in, got, c.want)
			}
			if got.Day() != 1 {
				t.Errorf("ParsePeriod(%q) not normalized to first day", c.in)
			}
		} else if err == nil {
			t.Errorf("ParsePeriod(%q) expected error, got %s", c.in, got)
		}
	}
}

func TestPeriodAddMonths(t *testing.T) {
	p := NewPeriod(2024, 11)
	if got := p.AddMonths(3); got.String() != "2025-02" {
		t.Fatalf("AddMonths(3) = %s, want 2025-02", got)
	}
	if got := p.AddMonths(0); !got.Equal(p) {
		t.Fatalf("AddMonths(0) = %s, want %s", got, p)
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Date:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Type:        Expense,
		Category:    "Rent",
		Description: "office rent",
		Amount:      1200,
		Account:     "Main",
		Paid:        true,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, ErrInvalidDate},
		{"bad type", func(tx *Transaction) { tx.Type = "Transfer" }, ErrInvalidType},
		{"negative amount", func(tx *Transaction) { tx.Amount = -1 }, ErrInvalidAmount},
		{"empty category", func(tx *Transaction) { tx.Category = "  " }, ErrEmptyCategory},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tx := valid
			c.mutate(&tx)
			if err := tx.Validate(); err != c.want {
				t.Fatalf("got %v, want %v", err, c.want)
			}
		})
	}
}

func TestTransactionPeriod(t *testing.T) {
	tx := Transaction{Date: time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)}
	if got := tx.Period().String(); got != "2024-05" {
		t.Fatalf("period = %s, want 2024-05", got)
	}
}
