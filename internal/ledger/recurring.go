package ledger

import (
	"fmt"
	"time"

	"caixa/internal/core"
)

// ExpandRecurring expands a recurring creation request into months
// independent transactions spaced one calendar month apart. The first
// occurrence keeps the base description; later ones get an "(M k/N)"
// lineage suffix. Days past the end of a shorter month clamp to its last
// day (Jan 31 recurs on Feb 28/29).
func ExpandRecurring(base core.Transaction, months int) ([]core.Transaction, error) {
	if months < 1 {
		return nil, core.ErrNegativeMonths
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	out := make([]core.Transaction, 0, months)
	for k := 0; k < months; k++ {
		tx := base
		tx.ID = 0
		tx.Date = addMonthsClamped(base.Date, k)
		if k > 0 {
			tx.Description = fmt.Sprintf("%s (M%d/%d)", base.Description, k+1, months)
		}
		out = append(out, tx)
	}
	return out, nil
}

// addMonthsClamped shifts a date by n months, clamping the day to the
// target month's length instead of letting it roll over.
func addMonthsClamped(d time.Time, n int) time.Time {
	year, month, day := d.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, d.Location())
	target := first.AddDate(0, n, 0)
	lastDay := target.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(target.Year(), target.Month(), day,
		d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}
