// Package ledgerfile persists the transaction ledger and the period
// history as CSV files. The ledger file follows the interchange contract
// used by the editable sheet: one header row, DD/MM/YYYY dates, boolean
// paid flag. Files are read fully and rewritten wholesale on every save.
package ledgerfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"caixa/internal/core"
)

// DateLayout is the textual date form of the ledger file.
const DateLayout = "02/01/2006"

var header = []string{"date", "type", "category", "description", "amount", "account", "paid"}

// TransactionFile is a CSV-backed transaction store.
type TransactionFile struct {
	path string
}

// NewTransactionFile points the store at path. The file is created lazily
// on first save.
func NewTransactionFile(path string) *TransactionFile {
	return &TransactionFile{path: path}
}

// Load reads the full ledger. A missing or unreadable file is recoverable:
// it logs a warning and yields an empty ledger instead of failing the
// caller's report. Rows that cannot be parsed are dropped silently.
func (f *TransactionFile) Load(ctx context.Context) ([]core.Transaction, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Ledger file unreadable, starting empty", "path", f.path, "error", err)
		}
		return nil, nil
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	lines, err := reader.ReadAll()
	if err != nil {
		slog.WarnContext(ctx, "Ledger file malformed, starting empty", "path", f.path, "error", err)
		return nil, nil
	}
	if len(lines) <= 1 {
		return nil, nil
	}

	out := make([]core.Transaction, 0, len(lines)-1)
	for i, line := range lines[1:] {
		tx, ok := parseRow(line)
		if !ok {
			continue
		}
		tx.ID = int64(i + 1)
		out = append(out, tx)
	}
	return out, nil
}

// Append loads the ledger, appends the rows and rewrites the file.
func (f *TransactionFile) Append(ctx context.Context, txs []core.Transaction) ([]core.Transaction, error) {
	existing, err := f.Load(ctx)
	if err != nil {
		return nil, err
	}
	all := append(existing, txs...)
	if err := f.write(all); err != nil {
		return nil, err
	}
	appended := all[len(existing):]
	for i := range appended {
		appended[i].ID = int64(len(existing) + i + 1)
	}
	return appended, nil
}

// ReplaceAll rewrites the file with exactly the given rows.
func (f *TransactionFile) ReplaceAll(ctx context.Context, txs []core.Transaction) error {
	return f.write(txs)
}

// Clear truncates the ledger to a bare header.
func (f *TransactionFile) Clear(ctx context.Context) error {
	return f.write(nil)
}

func (f *TransactionFile) write(txs []core.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create ledger directory: %w", err)
	}
	file, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("create ledger file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.Date.Format(DateLayout),
			string(tx.Type),
			tx.Category,
			tx.Description,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Account,
			strconv.FormatBool(tx.Paid),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func parseRow(line []string) (core.Transaction, bool) {
	if len(line) < 7 {
		return core.Transaction{}, false
	}
	date, err := time.Parse(DateLayout, strings.TrimSpace(line[0]))
	if err != nil {
		return core.Transaction{}, false
	}
	typ := core.TxType(strings.TrimSpace(line[1]))
	if !typ.Valid() {
		return core.Transaction{}, false
	}
	paid, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(line[6])))
	if err != nil {
		paid = false
	}
	return core.Transaction{
		Date:        date,
		Type:        typ,
		Category:    strings.TrimSpace(line[2]),
		Description: line[3],
		Amount:      core.ParseAmountOrZero(line[4]),
		Account:     strings.TrimSpace(line[5]),
		Paid:        paid,
	}, true
}
