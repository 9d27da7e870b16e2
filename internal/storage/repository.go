// Package storage persists the transaction ledger and the monthly period
// history in SQLite. The whole ledger is read into memory and written back
// wholesale on edits; last writer wins, no locking (single interactive
// writer by design of the surrounding application).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"caixa/internal/core"
	applog "caixa/internal/log"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// SQLiteRepository stores transactions and period history.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append inserts the given transactions in one database transaction and
// returns them with assigned IDs.
func (r *SQLiteRepository) Append(ctx context.Context, txs []core.Transaction) ([]core.Transaction, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (tx_date, tx_type, category, description, amount, account, paid)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		res, err := stmt.ExecContext(ctx,
			tx.Date.Format(dateLayout), string(tx.Type), tx.Category,
			tx.Description, tx.Amount, tx.Account, boolToInt(tx.Paid))
		if err != nil {
			return nil, fmt.Errorf("insert transaction: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("last insert id: %w", err)
		}
		tx.ID = id
		out = append(out, tx)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Transactions saved", applog.FieldRows, len(out))
	return out, nil
}

// Load returns the full ledger ordered by date ascending.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tx_date, tx_type, category, description, amount, account, paid
		FROM transactions ORDER BY tx_date, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			tx      core.Transaction
			rawDate string
			rawType string
			paid    int
		)
		if err := rows.Scan(&tx.ID, &rawDate, &rawType, &tx.Category,
			&tx.Description, &tx.Amount, &tx.Account, &paid); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Date, err = time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", rawDate, err)
		}
		tx.Type = core.TxType(rawType)
		tx.Paid = paid != 0
		out = append(out, tx)
	}
	return out, rows.Err()
}

// ReplaceAll swaps the entire ledger for the given rows. This backs the
// "save edited sheet" flow: the editor posts the whole table back.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, txs []core.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, tx := range txs {
		if _, err := dbTx.ExecContext(ctx, `
			INSERT INTO transactions (tx_date, tx_type, category, description, amount, account, paid)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			tx.Date.Format(dateLayout), string(tx.Type), tx.Category,
			tx.Description, tx.Amount, tx.Account, boolToInt(tx.Paid)); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	slog.InfoContext(ctx, "Ledger replaced", applog.FieldRows, len(txs))
	return nil
}

// Clear removes every ledger row.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	slog.InfoContext(ctx, "Ledger cleared")
	return nil
}

// UpsertPeriod writes one period row of the historical series, replacing
// any previous submission for the same period.
func (r *SQLiteRepository) UpsertPeriod(ctx context.Context, rec core.PeriodRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO period_history
			(period, net_revenue, cogs, operating_expenses, net_result,
			 inflows, outflows, budget_revenue, budget_expenses, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT (period) DO UPDATE SET
			net_revenue = excluded.net_revenue,
			cogs = excluded.cogs,
			operating_expenses = excluded.operating_expenses,
			net_result = excluded.net_result,
			inflows = excluded.inflows,
			outflows = excluded.outflows,
			budget_revenue = excluded.budget_revenue,
			budget_expenses = excluded.budget_expenses,
			updated_at = datetime('now')`,
		rec.Period.String(), rec.NetRevenue, rec.COGS, rec.OperatingExpenses,
		rec.NetResult, rec.Inflows, rec.Outflows, rec.BudgetRevenue, rec.BudgetExpenses)
	if err != nil {
		return fmt.Errorf("upsert period %s: %w", rec.Period, err)
	}

	slog.InfoContext(ctx, "Period history updated", applog.FieldPeriod, rec.Period.String())
	return nil
}

// LoadSeries returns the stored period series ordered ascending. Derived
// columns are not persisted; callers re-derive after loading.
func (r *SQLiteRepository) LoadSeries(ctx context.Context) ([]core.PeriodRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT period, net_revenue, cogs, operating_expenses, net_result,
		       inflows, outflows, budget_revenue, budget_expenses
		FROM period_history ORDER BY period`)
	if err != nil {
		return nil, fmt.Errorf("query period history: %w", err)
	}
	defer rows.Close()

	var out []core.PeriodRecord
	for rows.Next() {
		var (
			rec       core.PeriodRecord
			rawPeriod string
		)
		if err := rows.Scan(&rawPeriod, &rec.NetRevenue, &rec.COGS,
			&rec.OperatingExpenses, &rec.NetResult, &rec.Inflows,
			&rec.Outflows, &rec.BudgetRevenue, &rec.BudgetExpenses); err != nil {
			return nil, fmt.Errorf("scan period row: %w", err)
		}
		rec.Period, err = core.ParsePeriod(rawPeriod)
		if err != nil {
			return nil, fmt.Errorf("parse stored period %q: %w", rawPeriod, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
