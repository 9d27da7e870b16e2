package series

import "caixa/internal/core"

// Merge upserts the current period's record into the historical series.
// Any existing row with the same period key is removed first, so
// re-submitting a month replaces it rather than accumulating, and the
// result holds at most one row per period. The returned series is sorted
// ascending by period; the input slice is not mutated.
func Merge(history []core.PeriodRecord, current core.PeriodRecord) []core.PeriodRecord {
	merged := make([]core.PeriodRecord, 0, len(history)+1)
	for _, rec := range history {
		if rec.Period.Equal(current.Period) {
			continue
		}
		merged = append(merged, rec)
	}
	merged = append(merged, current)
	sortByPeriod(merged)
	return merged
}
