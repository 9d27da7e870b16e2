package services

import (
	"context"
	"testing"
	"time"

	"caixa/internal/core"
	"caixa/internal/ledger"
	"caixa/internal/memstore"
)

// countingStore wraps a store and counts Load calls, to observe caching.
type countingStore struct {
	TransactionStore
	loads int
}

func (c *countingStore) Load(ctx context.Context) ([]core.Transaction, error) {
	c.loads++
	return c.TransactionStore.Load(ctx)
}

func newTx(day string, typ core.TxType, category string, amount float64) core.Transaction {
	date, _ := time.Parse("2006-01-02", day)
	return core.Transaction{Date: date, Type: typ, Category: category, Amount: amount}
}

func TestLedgerServiceRecordAndList(t *testing.T) {
	svc := NewLedgerService(memstore.New(), time.Minute)
	ctx := context.Background()

	saved, err := svc.Record(ctx, newTx("2024-05-10", core.Income, "Sales", 900), 1)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(saved) != 1 || saved[0].ID == 0 {
		t.Fatalf("expected 1 row with assigned ID, got %+v", saved)
	}

	listed, err := svc.List(ctx, ledger.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].Category != "Sales" {
		t.Fatalf("unexpected listing: %+v", listed)
	}
}

func TestLedgerServiceRecordRejectsInvalid(t *testing.T) {
	svc := NewLedgerService(memstore.New(), time.Minute)

	bad := newTx("2024-05-10", core.Income, "", 900)
	if _, err := svc.Record(context.Background(), bad, 1); err == nil {
		t.Fatal("expected validation error for empty category")
	}
}

func TestLedgerServiceRecordRecurring(t *testing.T) {
	svc := NewLedgerService(memstore.New(), time.Minute)
	ctx := context.Background()

	base := newTx("2024-01-31", core.Expense, "Rent", 1200)
	base.Description = "Office rent"
	saved, err := svc.Record(ctx, base, 3)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(saved) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(saved))
	}
	if saved[0].Description != "Office rent" {
		t.Errorf("first occurrence should keep the description, got %q", saved[0].Description)
	}
	if saved[1].Description != "Office rent (M2/3)" {
		t.Errorf("second occurrence suffix: got %q", saved[1].Description)
	}
	if got := saved[1].Date.Format("2006-01-02"); got != "2024-02-29" {
		t.Errorf("february date should clamp to month end, got %s", got)
	}
}

func TestLedgerServiceCachesSnapshotUntilWrite(t *testing.T) {
	counting := &countingStore{TransactionStore: memstore.New()}
	svc := NewLedgerService(counting, time.Minute)
	ctx := context.Background()

	if _, err := svc.List(ctx, ledger.Filter{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Summary(ctx, ledger.Filter{}); err != nil {
		t.Fatal(err)
	}
	if counting.loads != 1 {
		t.Fatalf("expected 1 store load for repeated reads, got %d", counting.loads)
	}

	if _, err := svc.Record(ctx, newTx("2024-05-10", core.Income, "Sales", 10), 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(ctx, ledger.Filter{}); err != nil {
		t.Fatal(err)
	}
	if counting.loads != 2 {
		t.Fatalf("expected reload after write, got %d loads", counting.loads)
	}
}

func TestLedgerServiceSummary(t *testing.T) {
	svc := NewLedgerService(memstore.New(), time.Minute)
	ctx := context.Background()

	for _, tx := range []core.Transaction{
		newTx("2024-04-01", core.Income, "Sales", 2000),
		newTx("2024-04-15", core.Expense, "Rent", 800),
		newTx("2024-05-02", core.Expense, "Rent", 800),
	} {
		if _, err := svc.Record(ctx, tx, 1); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := svc.Summary(ctx, ledger.Filter{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Empty {
		t.Fatal("summary should not be empty")
	}
	if len(sum.Periods) != 2 {
		t.Fatalf("expected 2 period buckets, got %d", len(sum.Periods))
	}
	if sum.Periods[0].Inflows != 2000 || sum.Periods[0].Outflows != 800 {
		t.Errorf("april totals wrong: %+v", sum.Periods[0])
	}
}

func TestLedgerServiceReplaceAndClear(t *testing.T) {
	svc := NewLedgerService(memstore.New(), time.Minute)
	ctx := context.Background()

	if _, err := svc.Record(ctx, newTx("2024-04-01", core.Income, "Sales", 100), 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.Replace(ctx, []core.Transaction{newTx("2024-06-01", core.Expense, "Rent", 50)}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	listed, _ := svc.List(ctx, ledger.Filter{})
	if len(listed) != 1 || listed[0].Type != core.Expense {
		t.Fatalf("replace did not take: %+v", listed)
	}

	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	listed, _ = svc.List(ctx, ledger.Filter{})
	if len(listed) != 0 {
		t.Fatalf("expected empty ledger, got %+v", listed)
	}
}
