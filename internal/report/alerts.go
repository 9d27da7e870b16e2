package report

import (
	"fmt"

	"caixa/internal/core"
)

// EvaluateAlerts applies the threshold rules to the current period. The
// rules are independent and evaluated in a fixed order; every match is
// reported. An empty result is itself meaningful: "no alerts this period".
//
// A budget of zero means "not set" and never triggers the overspend rule.
func EvaluateAlerts(stmt core.Statement, netMarginPct, minMarginPct, budgetExpenses, closingBalance float64) []string {
	alerts := []string{}

	if netMarginPct < minMarginPct {
		alerts = append(alerts, fmt.Sprintf("Net margin (%.1f%%) below the %.1f%% minimum", netMarginPct, minMarginPct))
	}
	if budgetExpenses > 0 && stmt.OperatingExpenses > budgetExpenses {
		alerts = append(alerts, "Operating expenses ABOVE the month's budget.")
	}
	if closingBalance < 0 {
		alerts = append(alerts, "NEGATIVE cash flow (closing balance below zero).")
	}

	return alerts
}
