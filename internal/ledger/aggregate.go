// Package ledger aggregates dated income/expense transactions into monthly
// summaries: per-period totals, best/worst months and category breakdowns.
package ledger

import (
	"sort"
	"time"

	"caixa/internal/core"
)

type (
	// Filter selects ledger rows. The date range is inclusive and compared
	// at day granularity. An empty type set, account or category means
	// "all". Zero From/To leave that end unbounded.
	Filter struct {
		From     time.Time
		To       time.Time
		Types    []core.TxType
		Account  string
		Category string
	}

	// PeriodTotals is one row of the monthly summary table.
	PeriodTotals struct {
		Period   core.Period `json:"period"`
		Inflows  float64     `json:"inflows"`
		Outflows float64     `json:"outflows"`
		Net      float64     `json:"net"`
	}

	// Extreme names the period holding an extremum and its amount.
	Extreme struct {
		Period core.Period `json:"period"`
		Amount float64     `json:"amount"`
	}

	// CategoryTotal is one slice of the expense composition breakdown.
	CategoryTotal struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}

	// Summary is the aggregated view of the filtered ledger. Empty marks
	// the informational empty state: no row matched the filter and the
	// tables below are meaningless.
	Summary struct {
		Empty   bool           `json:"empty"`
		Periods []PeriodTotals `json:"periods"`

		MaxOutflow Extreme `json:"max_outflow"`
		MinOutflow Extreme `json:"min_outflow"`
		MaxInflow  Extreme `json:"max_inflow"`
		MinInflow  Extreme `json:"min_inflow"`

		ByCategory []CategoryTotal `json:"by_category"`
	}
)

// Match reports whether the transaction passes the filter.
func (f Filter) Match(tx core.Transaction) bool {
	day := tx.Date.Truncate(24 * time.Hour)
	if !f.From.IsZero() && day.Before(f.From.Truncate(24*time.Hour)) {
		return false
	}
	if !f.To.IsZero() && day.After(f.To.Truncate(24*time.Hour)) {
		return false
	}
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if tx.Type == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Account != "" && tx.Account != f.Account {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the filtered rows sorted by date ascending.
func (f Filter) Apply(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Summarize filters the ledger and aggregates it by period and type.
// Extrema are computed over the per-period totals; when several periods
// tie for an extreme value the earliest period wins (deterministic rule,
// the periods are scanned in ascending order with strict comparisons).
func Summarize(txs []core.Transaction, f Filter) Summary {
	filtered := f.Apply(txs)
	if len(filtered) == 0 {
		return Summary{Empty: true}
	}

	byPeriod := make(map[core.Period]*PeriodTotals)
	byCategory := make(map[string]float64)
	for _, tx := range filtered {
		p := tx.Period()
		totals, ok := byPeriod[p]
		if !ok {
			totals = &PeriodTotals{Period: p}
			byPeriod[p] = totals
		}
		switch tx.Type {
		case core.Income:
			totals.Inflows += tx.Amount
		case core.Expense:
			totals.Outflows += tx.Amount
			byCategory[tx.Category] += tx.Amount
		}
	}

	periods := make([]PeriodTotals, 0, len(byPeriod))
	for _, totals := range byPeriod {
		totals.Net = totals.Inflows - totals.Outflows
		periods = append(periods, *totals)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Period.Before(periods[j].Period) })

	summary := Summary{Periods: periods}
	summary.MaxOutflow = Extreme{Period: periods[0].Period, Amount: periods[0].Outflows}
	summary.MinOutflow = summary.MaxOutflow
	summary.MaxInflow = Extreme{Period: periods[0].Period, Amount: periods[0].Inflows}
	summary.MinInflow = summary.MaxInflow
	for _, pt := range periods[1:] {
		if pt.Outflows > summary.MaxOutflow.Amount {
			summary.MaxOutflow = Extreme{Period: pt.Period, Amount: pt.Outflows}
		}
		if pt.Outflows < summary.MinOutflow.Amount {
			summary.MinOutflow = Extreme{Period: pt.Period, Amount: pt.Outflows}
		}
		if pt.Inflows > summary.MaxInflow.Amount {
			summary.MaxInflow = Extreme{Period: pt.Period, Amount: pt.Inflows}
		}
		if pt.Inflows < summary.MinInflow.Amount {
			summary.MinInflow = Extreme{Period: pt.Period, Amount: pt.Inflows}
		}
	}

	summary.ByCategory = make([]CategoryTotal, 0, len(byCategory))
	for cat, amount := range byCategory {
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{Category: cat, Amount: amount})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	return summary
}
