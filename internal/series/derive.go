package series

import "caixa/internal/core"

// projectionWindow is the trailing moving-average span for the expense
// projection (current period plus up to two preceding ones).
const projectionWindow = 3

// Derive recomputes every derived column of the merged series, in period
// order: net cash delta, running cumulative balance and net margin.
//
// Historical rows imported without explicit cash movement get a best-effort
// back-fill: a zero inflow is substituted with net revenue and a zero
// outflow with COGS plus operating expenses. The substitution can
// misrepresent months that legitimately had zero revenue or zero cost; it
// is an approximation, not a reconstruction. The freshly computed row for
// currentPeriod always carries explicit cash figures and is never
// back-filled.
//
// The input is expected sorted ascending (Merge output); the slice is not
// mutated.
func Derive(series []core.PeriodRecord, currentPeriod core.Period) []core.PeriodRecord {
	out := make([]core.PeriodRecord, len(series))
	copy(out, series)

	balance := 0.0
	for i := range out {
		rec := &out[i]

		if !rec.Period.Equal(currentPeriod) {
			if rec.Inflows == 0 {
				rec.Inflows = rec.NetRevenue
			}
			if rec.Outflows == 0 {
				rec.Outflows = rec.COGS + rec.OperatingExpenses
			}
		}

		rec.NetCashDelta = rec.Inflows - rec.Outflows
		balance += rec.NetCashDelta
		rec.CumulativeBalance = balance

		rec.NetMarginPct = core.Ratio(rec.NetResult, rec.NetRevenue)
	}
	return out
}

// ExpenseProjection returns the trailing moving average of operating
// expenses over the last min(3, len) periods of the series, as a simple
// projection for the next month. With fewer than two periods there is no
// trend to average and the projection is reported as zero.
func ExpenseProjection(series []core.PeriodRecord) float64 {
	if len(series) < 2 {
		return 0
	}
	n := len(series)
	window := projectionWindow
	if n < window {
		window = n
	}
	sum := 0.0
	for _, rec := range series[n-window:] {
		sum += rec.OperatingExpenses
	}
	return sum / float64(window)
}

// Tail returns the last n periods of the series (the charts consume a
// 12-period window). The full series is returned when it is shorter.
func Tail(series []core.PeriodRecord, n int) []core.PeriodRecord {
	if n <= 0 || len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}
