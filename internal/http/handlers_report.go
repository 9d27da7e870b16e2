package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"caixa/internal/core"
	applog "caixa/internal/log"
	"caixa/internal/report"
	"caixa/internal/series"
)

const maxHistoryUploadBytes = 4 << 20

// reportRequest is the JSON payload of the report endpoints. HistoryCSV
// optionally carries an uploaded historical file verbatim; when present it
// takes precedence over the stored history.
type reportRequest struct {
	report.Params
	HistoryCSV string `json:"history_csv,omitempty"`
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	req, uploaded, warnings, ok := s.parseReportRequest(w, r)
	if !ok {
		return
	}

	rep, err := s.reports.Generate(r.Context(), req.Params, uploaded)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "generate report: "+err.Error())
		return
	}
	rep.Warnings = warnings
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	req, uploaded, warnings, ok := s.parseReportRequest(w, r)
	if !ok {
		return
	}

	rep, err := s.reports.Submit(r.Context(), req.Params, uploaded)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "submit report: "+err.Error())
		return
	}
	rep.Warnings = warnings
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	stored, err := s.reports.History(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load history: "+err.Error())
		return
	}

	// Derived columns are always recomputed for presentation.
	if len(stored) > 0 {
		latest := stored[len(stored)-1].Period
		stored = series.Derive(stored, latest)
	}
	if raw := r.URL.Query().Get("months"); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil || months < 1 {
			writeError(w, http.StatusBadRequest, "invalid months parameter")
			return
		}
		stored = series.Tail(stored, months)
	}
	writeJSON(w, http.StatusOK, map[string]any{"series": stored})
}

func (s *Server) parseReportRequest(w http.ResponseWriter, r *http.Request) (reportRequest, []core.PeriodRecord, []string, bool) {
	var req reportRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parsed, ok := s.parseMultipartReport(w, r)
		if !ok {
			return reportRequest{}, nil, nil, false
		}
		req = parsed
	} else if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return reportRequest{}, nil, nil, false
	}
	if req.Period.IsZero() {
		writeError(w, http.StatusBadRequest, "period is required")
		return reportRequest{}, nil, nil, false
	}

	// An unreadable history file is recoverable: the report is computed
	// without history and the problem is surfaced as a warning.
	var (
		uploaded []core.PeriodRecord
		warnings []string
	)
	if req.HistoryCSV != "" {
		raw, err := series.ReadHistory(strings.NewReader(req.HistoryCSV))
		if err != nil {
			slog.WarnContext(r.Context(), "Unreadable history file, proceeding without history",
				applog.FieldError, err)
			warnings = append(warnings, "unreadable history file: "+err.Error()+"; report computed without history")
		} else {
			uploaded = series.Normalize(raw)
		}
	}
	return req, uploaded, warnings, true
}

// parseMultipartReport accepts a form upload: a "params" field holding the
// JSON parameters and an optional "history" file part with the CSV. The
// file content lands in HistoryCSV so both transports share one path.
func (s *Server) parseMultipartReport(w http.ResponseWriter, r *http.Request) (reportRequest, bool) {
	if err := r.ParseMultipartForm(maxHistoryUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return reportRequest{}, false
	}

	var req reportRequest
	rawParams := r.FormValue("params")
	if rawParams == "" {
		writeError(w, http.StatusBadRequest, "missing params field")
		return reportRequest{}, false
	}
	if err := json.Unmarshal([]byte(rawParams), &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid params field: "+err.Error())
		return reportRequest{}, false
	}

	file, _, err := r.FormFile("history")
	if err == nil {
		defer file.Close()
		var sb strings.Builder
		if _, err := io.Copy(&sb, file); err != nil {
			writeError(w, http.StatusBadRequest, "read history file: "+err.Error())
			return reportRequest{}, false
		}
		req.HistoryCSV = sb.String()
	} else if err != http.ErrMissingFile {
		writeError(w, http.StatusBadRequest, "invalid history file: "+err.Error())
		return reportRequest{}, false
	}
	return req, true
}
