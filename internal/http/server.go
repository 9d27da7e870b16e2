// Package http exposes the reporting service as a JSON API: report
// generation and submission, the stored history and the transaction
// ledger.
package http

import (
	"context"
	"net/http"
	"time"

	"caixa/internal/middleware/trace"
	"caixa/internal/services"
)

type Server struct {
	httpServer *http.Server
	ledger     *services.LedgerService
	reports    *services.ReportService
}

func New(port string, ledger *services.LedgerService, reports *services.ReportService) *Server {
	s := &Server{ledger: ledger, reports: reports}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/v1/report", s.handleGenerateReport)
	mux.HandleFunc("POST /api/v1/report/submit", s.handleSubmitReport)
	mux.HandleFunc("GET /api/v1/history", s.handleHistory)

	mux.HandleFunc("GET /api/v1/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/v1/transactions", s.handleRecordTransaction)
	mux.HandleFunc("PUT /api/v1/transactions", s.handleReplaceTransactions)
	mux.HandleFunc("DELETE /api/v1/transactions", s.handleClearTransactions)
	mux.HandleFunc("GET /api/v1/transactions/summary", s.handleSummary)
	mux.HandleFunc("GET /api/v1/transactions/export", s.handleExportTransactions)

	s.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           trace.Middleware(securityHeaders(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until the server is shut down.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured handler chain, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Ready when the ledger store answers.
	if _, err := s.ledger.List(r.Context(), ledgerFilter(r)); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
