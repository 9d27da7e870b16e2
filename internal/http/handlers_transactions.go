package http

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"caixa/internal/core"
	"caixa/internal/ledger"
)

const apiDateLayout = "2006-01-02"

// transactionPayload is the wire form of a ledger entry. Dates travel as
// "YYYY-MM-DD" strings.
type transactionPayload struct {
	ID          int64   `json:"id,omitempty"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Account     string  `json:"account,omitempty"`
	Paid        bool    `json:"paid"`
}

type recordRequest struct {
	transactionPayload
	Months int `json:"months,omitempty"`
}

type replaceRequest struct {
	Transactions []transactionPayload `json:"transactions"`
}

func (p transactionPayload) toCore() (core.Transaction, error) {
	date, err := time.Parse(apiDateLayout, strings.TrimSpace(p.Date))
	if err != nil {
		return core.Transaction{}, core.ErrInvalidDate
	}
	return core.Transaction{
		ID:          p.ID,
		Date:        date,
		Type:        core.TxType(p.Type),
		Category:    p.Category,
		Description: p.Description,
		Amount:      p.Amount,
		Account:     p.Account,
		Paid:        p.Paid,
	}, nil
}

func fromCore(tx core.Transaction) transactionPayload {
	return transactionPayload{
		ID:          tx.ID,
		Date:        tx.Date.Format(apiDateLayout),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Description: tx.Description,
		Amount:      tx.Amount,
		Account:     tx.Account,
		Paid:        tx.Paid,
	}
}

func fromCoreList(txs []core.Transaction) []transactionPayload {
	out := make([]transactionPayload, 0, len(txs))
	for _, tx := range txs {
		out = append(out, fromCore(tx))
	}
	return out
}

// ledgerFilter builds the row filter from query parameters: from, to
// (YYYY-MM-DD, inclusive), type (repeatable), account, category.
func ledgerFilter(r *http.Request) ledger.Filter {
	q := r.URL.Query()
	var f ledger.Filter
	if v := q.Get("from"); v != "" {
		if t, err := time.Parse(apiDateLayout, v); err == nil {
			f.From = t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := time.Parse(apiDateLayout, v); err == nil {
			f.To = t
		}
	}
	for _, v := range q["type"] {
		if typ := core.TxType(v); typ.Valid() {
			f.Types = append(f.Types, typ)
		}
	}
	f.Account = q.Get("account")
	f.Category = q.Get("category")
	return f
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "csv" {
		s.handleExportTransactions(w, r)
		return
	}

	txs, err := s.ledger.List(r.Context(), ledgerFilter(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list transactions: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": fromCoreList(txs)})
}

func (s *Server) handleRecordTransaction(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	tx, err := req.toCore()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	months := req.Months
	if months == 0 {
		months = 1
	}
	if months < 1 || months > 120 {
		writeError(w, http.StatusBadRequest, "months must be between 1 and 120")
		return
	}

	saved, err := s.ledger.Record(r.Context(), tx, months)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transactions": fromCoreList(saved)})
}

func (s *Server) handleReplaceTransactions(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	txs := make([]core.Transaction, 0, len(req.Transactions))
	for i, p := range req.Transactions {
		tx, err := p.toCore()
		if err != nil {
			writeError(w, http.StatusBadRequest, "row "+strconv.Itoa(i+1)+": invalid date")
			return
		}
		txs = append(txs, tx)
	}

	if err := s.ledger.Replace(r.Context(), txs); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": len(txs)})
}

func (s *Server) handleClearTransactions(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "clear ledger: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": 0})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ledger.Summary(r.Context(), ledgerFilter(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "summarize ledger: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleExportTransactions streams the filtered ledger as a CSV download
// in the interchange format (DD/MM/YYYY dates, boolean paid flag).
func (s *Server) handleExportTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.ledger.List(r.Context(), ledgerFilter(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list transactions: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"date", "type", "category", "description", "amount", "account", "paid"})
	for _, tx := range txs {
		_ = cw.Write([]string{
			tx.Date.Format("02/01/2006"),
			string(tx.Type),
			tx.Category,
			tx.Description,
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			tx.Account,
			strconv.FormatBool(tx.Paid),
		})
	}
	cw.Flush()
}
