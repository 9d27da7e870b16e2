package report

import (
	"testing"

	"caixa/internal/core"
)

func baseParams() Params {
	return Params{
		Client: "Example Client",
		Period: core.NewPeriod(2024, 6),
		Statement: core.StatementInput{
			ProductSales:     10000,
			Returns:          1000,
			ProductCost:      4000,
			Marketing:        3000,
			InterestPaid:     200,
			InterestReceived: 100,
			IncomeTax:        500,
		},
		CashFlow: core.CashFlowInput{
			OpeningBalance: 500,
			SalesReceipts:  9000,
			Payroll:        7000,
		},
		MinMarginPct: 10,
	}
}

func TestBuildStatementAndKPIs(t *testing.T) {
	r := Build(baseParams(), nil)

	if r.Statement.NetResult != 1400 {
		t.Fatalf("net result = %v, want 1400", r.Statement.NetResult)
	}
	if len(r.Lines) != 15 {
		t.Fatalf("expected 15 statement lines, got %d", len(r.Lines))
	}
	if r.Lines[0].Label != "Gross Revenue" || r.Lines[0].Value != 10000 {
		t.Fatalf("unexpected first line: %+v", r.Lines[0])
	}
	if last := r.Lines[len(r.Lines)-1]; last.Value != 1400 {
		t.Fatalf("last line = %+v, want net result 1400", last)
	}
	// Deduction lines carry the presentation sign.
	if r.Lines[1].Value != -1000 {
		t.Fatalf("deductions line = %v, want -1000", r.Lines[1].Value)
	}

	wantNetMargin := 1400.0 / 9000 * 100
	if r.KPIs[2].Value != wantNetMargin {
		t.Fatalf("net margin KPI = %v, want %v", r.KPIs[2].Value, wantNetMargin)
	}
	// Single period: projection gated off.
	if r.ExpenseProjection != 0 {
		t.Fatalf("projection with one period = %v, want 0", r.ExpenseProjection)
	}
}

func TestBuildMergesIntoHistory(t *testing.T) {
	history := []core.PeriodRecord{
		{Period: core.NewPeriod(2024, 4), NetRevenue: 8000, COGS: 3000, OperatingExpenses: 2000, NetResult: 3000},
		{Period: core.NewPeriod(2024, 5), NetRevenue: 8500, COGS: 3200, OperatingExpenses: 2100, NetResult: 3200},
	}

	r := Build(baseParams(), history)

	if len(r.Series) != 3 {
		t.Fatalf("series length = %d, want 3", len(r.Series))
	}
	if r.Current.Period.String() != "2024-06" {
		t.Fatalf("current period = %s", r.Current.Period)
	}
	// Current row carries the derived cumulative balance.
	wantDelta := 9000.0 - 7000.0
	if r.Current.NetCashDelta != wantDelta {
		t.Fatalf("current delta = %v, want %v", r.Current.NetCashDelta, wantDelta)
	}
	// Projection over the trailing 3 periods' operating expenses.
	want := (2000.0 + 2100.0 + 3000.0) / 3
	if r.ExpenseProjection != want {
		t.Fatalf("projection = %v, want %v", r.ExpenseProjection, want)
	}
}

func TestBuildResubmissionReplacesPeriod(t *testing.T) {
	params := baseParams()
	first := Build(params, nil)

	params.Statement.ProductSales = 20000
	second := Build(params, first.Series)

	if len(second.Series) != 1 {
		t.Fatalf("resubmission must not grow the series, got %d rows", len(second.Series))
	}
	if second.Series[0].NetRevenue != 19000 {
		t.Fatalf("series row should hold the new figures, got %v", second.Series[0].NetRevenue)
	}
}

func TestBuildNegativeCashAlert(t *testing.T) {
	params := baseParams()
	params.CashFlow = core.CashFlowInput{SalesReceipts: 1200, SupplierPayments: 1500}

	r := Build(params, nil)

	found := false
	for _, a := range r.Alerts {
		if a == "NEGATIVE cash flow (closing balance below zero)." {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected negative cash alert, got %v", r.Alerts)
	}
}

func TestChartSeriesWindow(t *testing.T) {
	history := make([]core.PeriodRecord, 0, 14)
	for m := 0; m < 14; m++ {
		history = append(history, core.PeriodRecord{Period: core.NewPeriod(2023, 1).AddMonths(m), NetRevenue: 100})
	}

	params := baseParams()
	params.Period = core.NewPeriod(2024, 6)
	r := Build(params, history)

	if got := len(r.ChartSeries()); got != ChartWindow {
		t.Fatalf("chart window = %d, want %d", got, ChartWindow)
	}
}
