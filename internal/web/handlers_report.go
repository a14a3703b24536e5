package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bizsight/bizsight/internal/ingest"
	"github.com/bizsight/bizsight/internal/logging"
	"github.com/bizsight/bizsight/internal/report"
	"github.com/go-chi/chi/v5"
)

// handleDownloadTemplate serves a sample CSV template for a dataset kind.
// Pass ?format=xlsx for a spreadsheet instead.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	kind, err := ingest.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", report.TemplateFileName(kind, "csv")))
		w.Write([]byte(report.TemplateCSV(kind)))

	case "xlsx":
		// Render to a buffer first so a workbook failure still yields a
		// clean error response instead of a truncated download.
		var buf bytes.Buffer
		if err := report.TemplateXLSX(kind, &buf); err != nil {
			logging.FromContext(r.Context()).Error("render template workbook", "kind", kind, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to write spreadsheet")
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", report.TemplateFileName(kind, "xlsx")))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Write(buf.Bytes())

	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
	}
}

// handleDashboard returns the dashboard dataset.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := report.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load dashboard data")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleExport serves the dashboard dataset as an indented, timestamped
// JSON download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	d, err := report.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load dashboard data")
		return
	}

	data, name, err := report.Export(d, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(data)
}
