package series

import (
	"fmt"
	"testing"

	"caixa/internal/core"
)

func TestNormalizeAliasesAndZeroFill(t *testing.T) {
	rows := []RawRecord{
		{
			" Period ":  "2024/03",
			"Revenue":   "1000,50",
			"COGS":      "400",
			"Expenses":  "250",
			"entries":   "900",
			"outflows":  "700",
		},
	}

	got := Normalize(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	rec := got[0]
	if rec.Period.String() != "2024-03" {
		t.Errorf("period = %s, want 2024-03", rec.Period)
	}
	if rec.NetRevenue != 1000.50 {
		t.Errorf("net revenue = %v, want 1000.50", rec.NetRevenue)
	}
	if rec.COGS != 400 || rec.OperatingExpenses != 250 {
		t.Errorf("cogs/opex = %v/%v", rec.COGS, rec.OperatingExpenses)
	}
	if rec.Inflows != 900 || rec.Outflows != 700 {
		t.Errorf("inflows/outflows = %v/%v", rec.Inflows, rec.Outflows)
	}
	// Absent budget columns zero-fill.
	if rec.BudgetRevenue != 0 || rec.BudgetExpenses != 0 {
		t.Errorf("budgets should zero-fill, got %v/%v", rec.BudgetRevenue, rec.BudgetExpenses)
	}
	// Approximated net result for history rows.
	if rec.NetResult != 1000.50-400-250 {
		t.Errorf("net result = %v, want %v", rec.NetResult, 1000.50-400-250)
	}
}

func TestNormalizeKeepsExplicitNetResult(t *testing.T) {
	// A submitted period's net result includes the financial result and
	// taxes, so an explicit column must survive reload unchanged.
	rows := []RawRecord{
		{"period": "2024-01", "net_revenue": "1000", "cost_of_goods_or_services": "400",
			"operating_expenses": "250", "net_result": "120.75"},
		{"period": "2024-02", "net_revenue": "1000", "cogs": "400", "expenses": "250", "net_result": ""},
	}

	got := Normalize(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].NetResult != 120.75 {
		t.Errorf("explicit net result = %v, want 120.75", got[0].NetResult)
	}
	// Blank column falls back to the approximation.
	if got[1].NetResult != 350 {
		t.Errorf("approximated net result = %v, want 350", got[1].NetResult)
	}
}

func TestNormalizeDropsUnparseablePeriods(t *testing.T) {
	rows := []RawRecord{
		{"period": "2024-01", "net_revenue": "100"},
		{"period": "not-a-month", "net_revenue": "200"},
		{"period": "", "net_revenue": "300"},
		{"period": "2024-02", "net_revenue": "nope"}, // value coerces to zero, row stays
	}

	got := Normalize(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[1].NetRevenue != 0 {
		t.Errorf("non-numeric revenue should coerce to zero, got %v", got[1].NetRevenue)
	}
}

func TestNormalizeSortsAscendingKeepsDuplicates(t *testing.T) {
	rows := []RawRecord{
		{"period": "2024-03", "net_revenue": "3"},
		{"period": "2024-01", "net_revenue": "1"},
		{"period": "2024-03", "net_revenue": "33"},
		{"period": "2024-02", "net_revenue": "2"},
	}

	got := Normalize(rows)
	if len(got) != 4 {
		t.Fatalf("duplicates must survive normalization, got %d rows", len(got))
	}
	want := []string{"2024-01", "2024-02", "2024-03", "2024-03"}
	for i, w := range want {
		if got[i].Period.String() != w {
			t.Fatalf("row %d period = %s, want %s", i, got[i].Period, w)
		}
	}
	// Stable sort keeps first-seen duplicate first.
	if got[2].NetRevenue != 3 || got[3].NetRevenue != 33 {
		t.Errorf("duplicate order not preserved: %v, %v", got[2].NetRevenue, got[3].NetRevenue)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Fatalf("nil input should yield empty series, got %d rows", len(got))
	}
	if got := Normalize([]RawRecord{}); len(got) != 0 {
		t.Fatalf("empty input should yield empty series, got %d rows", len(got))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	rows := []RawRecord{
		{"period": "2024-02", "revenue": "1200", "cogs": "300", "expenses": "150", "cash_inflows": "1000", "cash_outflows": "800"},
		{"period": "2024-01", "revenue": "1000", "cogs": "250", "expenses": "100"},
	}

	once := Normalize(rows)
	twice := Normalize(rawFromRecords(once))

	if len(once) != len(twice) {
		t.Fatalf("lengths differ: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("row %d differs after re-normalization:\n once: %+v\ntwice: %+v", i, once[i], twice[i])
		}
	}
}

// rawFromRecords serializes canonical records back to raw rows, the way an
// already-canonical CSV would present them.
func rawFromRecords(recs []core.PeriodRecord) []RawRecord {
	out := make([]RawRecord, len(recs))
	for i, r := range recs {
		out[i] = RawRecord{
			ColPeriod:         r.Period.String(),
			ColNetRevenue:     fmt.Sprintf("%v", r.NetRevenue),
			ColCOGS:           fmt.Sprintf("%v", r.COGS),
			ColOpex:           fmt.Sprintf("%v", r.OperatingExpenses),
			ColNetResult:      fmt.Sprintf("%v", r.NetResult),
			ColInflows:        fmt.Sprintf("%v", r.Inflows),
			ColOutflows:       fmt.Sprintf("%v", r.Outflows),
			ColBudgetRevenue:  fmt.Sprintf("%v", r.BudgetRevenue),
			ColBudgetExpenses: fmt.Sprintf("%v", r.BudgetExpenses),
		}
	}
	return out
}
