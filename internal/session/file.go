package session

import (
	"time"

	"github.com/bizsight/bizsight/internal/ingest"
	"github.com/google/uuid"
)

// FileStatus is the lifecycle state of an uploaded file within a session.
type FileStatus string

const (
	// StatusPreview means the file has been parsed and validated but not
	// confirmed. Files with validation errors stay in preview.
	StatusPreview FileStatus = "preview"

	// StatusUploaded means the file's confirm action completed.
	StatusUploaded FileStatus = "success"
)

// UploadedFile is a parsed, validated file held in session state. The data
// is never persisted; it exists for preview and confirmation only and is
// discarded with the session.
type UploadedFile struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	Size          int64                    `json:"size"`
	Kind          ingest.Kind              `json:"kind"`
	SuggestedKind ingest.Kind              `json:"suggestedKind"`
	Table         ingest.Table             `json:"-"`
	Errors        []ingest.ValidationError `json:"errors"`
	Status        FileStatus               `json:"status"`
	UploadedAt    time.Time                `json:"uploadedAt,omitempty"`
}

// NewUploadedFile runs the ingestion pipeline on raw file content and wraps
// the result in session state.
func NewUploadedFile(name string, size int64, content string) *UploadedFile {
	table, kind, errs := ingest.ValidateFile(name, content)
	return &UploadedFile{
		ID:            uuid.New(),
		Name:          name,
		Size:          size,
		Kind:          kind,
		SuggestedKind: ingest.SuggestKind(table.Headers),
		Table:         table,
		Errors:        errs,
		Status:        StatusPreview,
	}
}

// Uploadable reports whether the file can be confirmed: any validation
// error, structural or per-row, blocks confirmation.
func (f *UploadedFile) Uploadable() bool {
	return len(f.Errors) == 0 && f.Status == StatusPreview
}

// MarkUploaded transitions the file to its terminal success state.
func (f *UploadedFile) MarkUploaded(at time.Time) {
	f.Status = StatusUploaded
	f.UploadedAt = at
}
