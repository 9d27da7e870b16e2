package ledgerfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"caixa/internal/core"
	"caixa/internal/series"
)

var historyHeader = []string{
	series.ColPeriod, series.ColNetRevenue, series.ColCOGS, series.ColOpex,
	series.ColNetResult, series.ColInflows, series.ColOutflows,
	series.ColBudgetRevenue, series.ColBudgetExpenses,
}

// HistoryFile is a CSV-backed period history store. Reads go through the
// same normalization as uploaded history files, so hand-edited files with
// alias column names or odd delimiters still load.
type HistoryFile struct {
	path string
}

func NewHistoryFile(path string) *HistoryFile {
	return &HistoryFile{path: path}
}

// LoadSeries reads the stored period series. A missing file yields an
// empty series.
func (f *HistoryFile) LoadSeries(ctx context.Context) ([]core.PeriodRecord, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer file.Close()

	raw, err := series.ReadHistory(file)
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	return series.Normalize(raw), nil
}

// UpsertPeriod merges one period row into the stored series and rewrites
// the file.
func (f *HistoryFile) UpsertPeriod(ctx context.Context, rec core.PeriodRecord) error {
	existing, err := f.LoadSeries(ctx)
	if err != nil {
		return err
	}
	merged := series.Merge(existing, rec)

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}
	file, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("create history file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(historyHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range merged {
		row := []string{
			r.Period.String(),
			num(r.NetRevenue), num(r.COGS), num(r.OperatingExpenses), num(r.NetResult),
			num(r.Inflows), num(r.Outflows), num(r.BudgetRevenue), num(r.BudgetExpenses),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
