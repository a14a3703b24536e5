package web

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/bizsight/bizsight/internal/ingest"
	"github.com/bizsight/bizsight/internal/logging"
	"github.com/bizsight/bizsight/internal/session"
	appmw "github.com/bizsight/bizsight/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// previewResponse is the result of parsing and validating an uploaded file.
type previewResponse struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	Size          int64                    `json:"size"`
	Kind          ingest.Kind              `json:"kind"`
	SuggestedKind ingest.Kind              `json:"suggestedKind"`
	Headers       []string                 `json:"headers"`
	Rows          []map[string]string      `json:"rows"`
	RowCount      int                      `json:"rowCount"`
	ColumnCount   int                      `json:"columnCount"`
	Errors        []ingest.ValidationError `json:"errors"`
	ErrorCount    int                      `json:"errorCount"`
	Uploadable    bool                     `json:"uploadable"`
	Status        session.FileStatus       `json:"status"`
}

// handlePreview accepts a CSV file, runs the ingestion pipeline, and records
// the result in session state. Files are rejected synchronously on extension
// or size before any parsing happens.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	// Leave headroom for the multipart framing around the file part.
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+(64<<10))

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	ext := s.cfg.Upload.AllowedExtension
	if !strings.EqualFold(filepath.Ext(header.Filename), ext) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Please upload %s files only", strings.ToUpper(strings.TrimPrefix(ext, "."))))
		return
	}
	if header.Size > maxSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File size must be less than %dMB", maxSize/(1024*1024)))
		return
	}

	// The whole file is read into memory; the size gate above keeps this
	// bounded. Uploads are previewed, never persisted.
	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	uploaded := session.NewUploadedFile(header.Filename, header.Size, string(content))
	sess := appmw.SessionFrom(r.Context())
	sess.AddFile(uploaded)

	logging.FromContext(r.Context()).Info("file previewed",
		"file", uploaded.Name,
		"kind", uploaded.Kind,
		"rows", len(uploaded.Table.Rows),
		"errors", len(uploaded.Errors),
	)

	writeJSON(w, http.StatusOK, s.previewOf(uploaded))
}

// previewOf shapes an uploaded file for the API, echoing at most the
// configured number of rows.
func (s *Server) previewOf(f *session.UploadedFile) previewResponse {
	limit := s.cfg.Upload.PreviewRows
	if limit > len(f.Table.Rows) {
		limit = len(f.Table.Rows)
	}
	rows := make([]map[string]string, 0, limit)
	for _, row := range f.Table.Rows[:limit] {
		rows = append(rows, row.Cells)
	}

	errs := f.Errors
	if errs == nil {
		errs = []ingest.ValidationError{}
	}

	return previewResponse{
		ID:            f.ID,
		Name:          f.Name,
		Size:          f.Size,
		Kind:          f.Kind,
		SuggestedKind: f.SuggestedKind,
		Headers:       f.Table.Headers,
		Rows:          rows,
		RowCount:      len(f.Table.Rows),
		ColumnCount:   len(f.Table.Headers),
		Errors:        errs,
		ErrorCount:    len(f.Errors),
		Uploadable:    f.Uploadable(),
		Status:        f.Status,
	}
}

// handleListFiles returns the session's uploaded files.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	sess := appmw.SessionFrom(r.Context())

	files := sess.Files()
	out := make([]previewResponse, 0, len(files))
	for _, f := range files {
		out = append(out, s.previewOf(f))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"files": out, "count": len(out)})
}

// handleConfirmUpload submits a validated file through the submitter.
// Any validation error blocks confirmation.
func (s *Server) handleConfirmUpload(w http.ResponseWriter, r *http.Request) {
	sess := appmw.SessionFrom(r.Context())

	f, ok := s.sessionFile(w, r, sess)
	if !ok {
		return
	}
	if !f.Uploadable() {
		if f.Status == session.StatusUploaded {
			writeError(w, http.StatusConflict, "file already uploaded")
		} else {
			writeError(w, http.StatusConflict, fmt.Sprintf("file has %d validation errors", len(f.Errors)))
		}
		return
	}

	ack, err := s.uploads.Submit(r.Context(), len(f.Table.Rows))
	if err != nil {
		logging.FromContext(r.Context()).Error("upload submit failed", "file", f.Name, "error", err)
		writeError(w, http.StatusBadGateway, "upload failed, please retry")
		return
	}

	f.MarkUploaded(time.Now())
	logging.FromContext(r.Context()).Info("file uploaded", "file", f.Name, "rows", ack.Records)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      f.Status,
		"records":     ack.Records,
		"completedAt": ack.CompletedAt,
	})
}

// handleRemoveFile drops a file from the session list.
func (s *Server) handleRemoveFile(w http.ResponseWriter, r *http.Request) {
	sess := appmw.SessionFrom(r.Context())

	f, ok := s.sessionFile(w, r, sess)
	if !ok {
		return
	}
	sess.RemoveFile(f.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// sessionFile resolves the fileID URL parameter against the session,
// writing the error response when the lookup fails.
func (s *Server) sessionFile(w http.ResponseWriter, r *http.Request, sess *session.Session) (*session.UploadedFile, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "fileID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file ID")
		return nil, false
	}
	f := sess.File(id)
	if f == nil {
		writeError(w, http.StatusNotFound, "file not found")
		return nil, false
	}
	return f, true
}
