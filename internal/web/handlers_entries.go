package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bizsight/bizsight/internal/entry"
	"github.com/bizsight/bizsight/internal/logging"
	appmw "github.com/bizsight/bizsight/internal/web/middleware"
	"github.com/go-chi/chi/v5"
)

// handleAddEntry validates a manual-entry draft and appends it to the
// session's pending list. Validation failures return the full field→message
// map so the client can show every problem at once.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var draft entry.Record
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if errs := entry.Validate(draft); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "Please fix the errors before submitting",
			"fields": errs,
		})
		return
	}

	sess := appmw.SessionFrom(r.Context())
	if err := sess.Pending.Add(draft); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "added",
		"pending": sess.Pending.Len(),
	})
}

// handleListEntries returns the session's pending entries.
func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	sess := appmw.SessionFrom(r.Context())
	entries := sess.Pending.Entries()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// handleRemoveEntry deletes a pending entry by its list index.
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry index")
		return
	}

	sess := appmw.SessionFrom(r.Context())
	if err := sess.Pending.Remove(index); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "removed",
		"pending": sess.Pending.Len(),
	})
}

// handleSaveEntries performs the all-or-nothing bulk save of pending
// entries. On failure every entry stays pending.
func (s *Server) handleSaveEntries(w http.ResponseWriter, r *http.Request) {
	sess := appmw.SessionFrom(r.Context())

	ack, err := sess.Pending.SaveAll(r.Context(), s.saves)
	if err != nil {
		if errors.Is(err, entry.ErrNoEntries) {
			writeError(w, http.StatusBadRequest, "No entries to save")
			return
		}
		logging.FromContext(r.Context()).Error("bulk save failed", "error", err)
		writeError(w, http.StatusBadGateway, "Failed to save entries")
		return
	}

	logging.FromContext(r.Context()).Info("entries saved", "count", ack.Records)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "saved",
		"records":     ack.Records,
		"completedAt": ack.CompletedAt,
	})
}
