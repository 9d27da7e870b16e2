package sheets

import (
	"context"

	"caixa/internal/core"
)

// SeriesWriter is the port for spreadsheet export targets. WriteSeries
// replaces the exported sheet content with the given derived period
// series.
type SeriesWriter interface {
	WriteSeries(ctx context.Context, series []core.PeriodRecord) error
}
