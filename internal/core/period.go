package core

// PeriodRecord is one row of the monthly historical series, keyed by Period.
// The persisted subset (revenue through budgets) comes either from imported
// history or from a submitted report; the derived columns (NetCashDelta,
// CumulativeBalance, NetMarginPct) are recomputed by the metrics engine
// whenever the series changes.
type PeriodRecord struct {
	Period Period `json:"period"`

	NetRevenue        float64 `json:"net_revenue"`
	COGS              float64 `json:"cogs"`
	OperatingExpenses float64 `json:"operating_expenses"`
	NetResult         float64 `json:"net_result"`

	Inflows  float64 `json:"inflows"`
	Outflows float64 `json:"outflows"`

	BudgetRevenue  float64 `json:"budget_revenue"`
	BudgetExpenses float64 `json:"budget_expenses"`

	NetCashDelta      float64 `json:"net_cash_delta"`
	CumulativeBalance float64 `json:"cumulative_balance"`
	NetMarginPct      float64 `json:"net_margin_pct"`
}
