// Package report assembles the monthly report: income statement lines,
// cash-flow summary, KPIs, expense composition, the derived period series
// and alerts. Everything here is plain numeric/textual data; currency
// formatting, charting and file encoding belong to the presentation layer.
package report

import (
	"caixa/internal/core"
	"caixa/internal/series"
)

// ChartWindow is how many trailing periods the on-screen charts show.
const ChartWindow = 12

type (
	// Params collects everything a report generation needs for one month.
	Params struct {
		Client         string              `json:"client"`
		Period         core.Period         `json:"period"`
		Statement      core.StatementInput `json:"statement"`
		CashFlow       core.CashFlowInput  `json:"cash_flow"`
		BudgetRevenue  float64             `json:"budget_revenue"`
		BudgetExpenses float64             `json:"budget_expenses"`
		MinMarginPct   float64             `json:"min_margin_pct"`
		IncludeHistory bool                `json:"include_history"`
	}

	// Line is one ordered row of the statement table. Values carry the
	// presentation sign: deduction lines are negative, "=" lines are the
	// running subtotal.
	Line struct {
		Label string  `json:"label"`
		Value float64 `json:"value"`
	}

	// KPI is a single indicator for the KPI card list.
	KPI struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
		Unit  string  `json:"unit"` // "percent" or "currency"
	}

	// Report is the full content contract handed to UI, exporters and the
	// spreadsheet sync worker.
	Report struct {
		Client    string         `json:"client"`
		Period    core.Period    `json:"period"`
		Statement core.Statement `json:"statement"`
		CashFlow  core.CashFlow  `json:"cash_flow"`

		Lines       []Line `json:"lines"`
		KPIs        []KPI  `json:"kpis"`
		Composition []Line `json:"composition"` // operating expense blocks

		Series            []core.PeriodRecord `json:"series"`
		Current           core.PeriodRecord   `json:"current"`
		ExpenseProjection float64             `json:"expense_projection"`

		Alerts   []string `json:"alerts"`
		AlertsOK bool     `json:"alerts_ok"`

		// Warnings carries recoverable input problems, such as an
		// unreadable history file the computation proceeded without.
		Warnings []string `json:"warnings,omitempty"`
	}
)

// Build computes the statement and cash flow for the period, merges the
// result into the (already normalized) historical series, derives the
// series metrics and evaluates alerts. The history slice may be empty.
func Build(params Params, history []core.PeriodRecord) Report {
	stmt := core.ComputeStatement(params.Statement)
	cash := core.ComputeCashFlow(params.CashFlow)

	current := core.PeriodRecord{
		Period:            params.Period,
		NetRevenue:        stmt.NetRevenue,
		COGS:              stmt.COGS,
		OperatingExpenses: stmt.OperatingExpenses,
		NetResult:         stmt.NetResult,
		Inflows:           cash.Inflows,
		Outflows:          cash.Outflows,
		BudgetRevenue:     params.BudgetRevenue,
		BudgetExpenses:    params.BudgetExpenses,
	}

	merged := series.Merge(history, current)
	derived := series.Derive(merged, params.Period)
	projection := series.ExpenseProjection(derived)

	for _, rec := range derived {
		if rec.Period.Equal(params.Period) {
			current = rec
			break
		}
	}

	netMargin := core.Ratio(stmt.NetResult, stmt.NetRevenue)
	alerts := EvaluateAlerts(stmt, netMargin, params.MinMarginPct, params.BudgetExpenses, cash.ClosingBalance)

	return Report{
		Client:    params.Client,
		Period:    params.Period,
		Statement: stmt,
		CashFlow:  cash,
		Lines:     StatementLines(params.Statement, stmt),
		KPIs: []KPI{
			{Name: "Gross Margin", Value: core.Ratio(stmt.GrossProfit, stmt.NetRevenue), Unit: "percent"},
			{Name: "Operating Margin", Value: core.Ratio(stmt.EBIT, stmt.NetRevenue), Unit: "percent"},
			{Name: "Net Margin", Value: netMargin, Unit: "percent"},
			{Name: "Expense Projection (3-month average)", Value: projection, Unit: "currency"},
		},
		Composition: []Line{
			{Label: "Selling", Value: stmt.SellingExpenses},
			{Label: "Administrative", Value: stmt.AdminExpenses},
			{Label: "Other operating", Value: stmt.OtherOperating},
		},
		Series:            derived,
		Current:           current,
		ExpenseProjection: projection,
		Alerts:            alerts,
		AlertsOK:          len(alerts) == 0,
	}
}

// StatementLines renders the ordered label/value statement table. Deducted
// lines are negated for presentation; "=" lines repeat the computed totals.
// Income tax and social contribution come from the raw inputs because the
// statement only carries their sum.
func StatementLines(in core.StatementInput, s core.Statement) []Line {
	return []Line{
		{Label: "Gross Revenue", Value: s.GrossRevenue},
		{Label: "(-) Deductions (returns/discounts/taxes)", Value: -s.Deductions},
		{Label: "= Net Revenue", Value: s.NetRevenue},
		{Label: "(-) Cost of Goods/Services", Value: -s.COGS},
		{Label: "= Gross Profit", Value: s.GrossProfit},
		{Label: "(-) Selling Expenses", Value: -s.SellingExpenses},
		{Label: "(-) Administrative Expenses", Value: -s.AdminExpenses},
		{Label: "(-) Other Operating Expenses", Value: -s.OtherOperating},
		{Label: "= EBIT (Operating Result)", Value: s.EBIT},
		{Label: "(-) Financial Expenses", Value: -s.FinancialExpenses},
		{Label: "(+) Financial Income", Value: s.FinancialIncome},
		{Label: "= Pre-Tax Result", Value: s.PreTaxResult},
		{Label: "(-) Income Tax", Value: -in.IncomeTax},
		{Label: "(-) Social Contribution", Value: -in.SocialContribution},
		{Label: "= Net Result", Value: s.NetResult},
	}
}

// ChartSeries returns the window of the derived series the charts consume.
func (r Report) ChartSeries() []core.PeriodRecord {
	return series.Tail(r.Series, ChartWindow)
}
