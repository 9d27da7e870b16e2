// Package series implements the monthly aggregation pipeline: normalizing
// heterogeneous historical records into canonical period rows, merging the
// current month into the series, and computing the derived columns that
// charts and exports consume.
package series

import (
	"sort"
	"strings"

	"caixa/internal/core"
)

// RawRecord is one historical row as read from an external source, before
// any column-name or value normalization.
type RawRecord map[string]string

// Canonical history column names. These are the external CSV contract; the
// alias table below maps accepted synonyms onto them.
const (
	ColPeriod         = "period"
	ColNetRevenue     = "net_revenue"
	ColCOGS           = "cost_of_goods_or_services"
	ColOpex           = "operating_expenses"
	ColNetResult      = "net_result"
	ColInflows        = "cash_inflows"
	ColOutflows       = "cash_outflows"
	ColBudgetRevenue  = "budgeted_revenue"
	ColBudgetExpenses = "budgeted_expenses"
)

// aliases maps each canonical column to the synonyms accepted on import.
// Matching is case-insensitive on trimmed names; the canonical name itself
// always matches.
var aliases = map[string][]string{
	ColPeriod:         {"month", "mes"},
	ColNetRevenue:     {"revenue", "net revenue", "revenues"},
	ColCOGS:           {"cogs", "cost_of_goods", "cost_of_services", "cost of goods", "cost of services"},
	ColOpex:           {"expenses", "operating expenses", "opex"},
	ColNetResult:      {"net result", "result"},
	ColInflows:        {"inflows", "cash inflows", "entries"},
	ColOutflows:       {"outflows", "cash outflows"},
	ColBudgetRevenue:  {"budgeted_revenues", "budgeted revenue", "budget_revenue"},
	ColBudgetExpenses: {"budgeted_expense", "budgeted expenses", "budget_expenses"},
}

// canonicalFor resolves a raw column name to its canonical column, or ""
// when the name is not recognized.
func canonicalFor(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for canonical, syns := range aliases {
		if name == canonical {
			return canonical
		}
		for _, s := range syns {
			if name == s {
				return canonical
			}
		}
	}
	return ""
}

// Normalize coerces arbitrary historical rows into canonical PeriodRecords:
// alias-resolved columns, zero-filled absent fields, parsed period keys and
// float-coerced values. Rows whose period cannot be parsed are dropped, not
// errored. The output is sorted ascending by period; duplicate periods are
// retained (deduplication happens at merge time).
//
// An explicit net_result column is kept as-is (submitted periods carry the
// financial result and taxes in it); when absent or blank it is approximated
// as net revenue - COGS - operating expenses. Normalize is idempotent over
// already-canonical input.
func Normalize(rows []RawRecord) []core.PeriodRecord {
	out := make([]core.PeriodRecord, 0, len(rows))
	for _, row := range rows {
		canonical := make(map[string]string, len(row))
		for name, value := range row {
			if col := canonicalFor(name); col != "" {
				canonical[col] = value
			}
		}

		period, err := core.ParsePeriod(canonical[ColPeriod])
		if err != nil {
			continue
		}

		rec := core.PeriodRecord{
			Period:            period,
			NetRevenue:        core.ParseAmountOrZero(canonical[ColNetRevenue]),
			COGS:              core.ParseAmountOrZero(canonical[ColCOGS]),
			OperatingExpenses: core.ParseAmountOrZero(canonical[ColOpex]),
			Inflows:           core.ParseAmountOrZero(canonical[ColInflows]),
			Outflows:          core.ParseAmountOrZero(canonical[ColOutflows]),
			BudgetRevenue:     core.ParseAmountOrZero(canonical[ColBudgetRevenue]),
			BudgetExpenses:    core.ParseAmountOrZero(canonical[ColBudgetExpenses]),
		}
		if v, ok := canonical[ColNetResult]; ok && strings.TrimSpace(v) != "" {
			rec.NetResult = core.ParseAmountOrZero(v)
		} else {
			rec.NetResult = rec.NetRevenue - rec.COGS - rec.OperatingExpenses
		}
		out = append(out, rec)
	}

	sortByPeriod(out)
	return out
}

func sortByPeriod(series []core.PeriodRecord) {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Period.Before(series[j].Period)
	})
}
