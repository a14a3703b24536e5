package session

import (
	"testing"
	"time"

	"github.com/bizsight/bizsight/internal/auth"
	"github.com/bizsight/bizsight/internal/entry"
	"github.com/google/uuid"
)

func testUser() auth.User {
	return auth.User{ID: uuid.New(), Name: "Jane", Email: "jane@example.com"}
}

func validEntry() entry.Record {
	return entry.Record{
		Date:     "2024-01-01",
		Product:  "iPhone 13",
		Category: "Electronics",
		Amount:   "999.00",
		Customer: "John Doe",
		Quantity: "1",
	}
}

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Stop()

	s := m.Create(testUser())
	if s.Token == "" {
		t.Fatal("Create() returned empty token")
	}
	if s.Pending == nil {
		t.Fatal("session has no pending list")
	}

	got, ok := m.Get(s.Token)
	if !ok || got.Token != s.Token {
		t.Errorf("Get() = %v, %v, want the created session", got, ok)
	}
	if _, ok := m.Get("bogus"); ok {
		t.Error("Get(bogus) = true, want false")
	}
}

func TestManager_Expiry(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	defer m.Stop()

	s := m.Create(testUser())
	time.Sleep(20 * time.Millisecond)

	if _, ok := m.Get(s.Token); ok {
		t.Error("Get() returned an expired session")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want expired session dropped on access", m.Len())
	}
}

func TestManager_Destroy(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Stop()

	s := m.Create(testUser())
	s.Pending.Add(validEntry())
	m.Destroy(s.Token)

	if _, ok := m.Get(s.Token); ok {
		t.Error("Get() found a destroyed session")
	}
}

func TestSession_FileLifecycle(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Stop()
	s := m.Create(testUser())

	f := NewUploadedFile("sales.csv", 64, "Date,Product,Amount\n2024-01-15,iPhone 13,999.00")
	s.AddFile(f)

	if got := s.File(f.ID); got != f {
		t.Fatalf("File() = %v, want the added file", got)
	}
	if !f.Uploadable() {
		t.Fatalf("clean file not uploadable: errors = %v", f.Errors)
	}

	f.MarkUploaded(time.Now())
	if f.Status != StatusUploaded {
		t.Errorf("Status = %v, want %v", f.Status, StatusUploaded)
	}
	if f.Uploadable() {
		t.Error("already-uploaded file reported uploadable")
	}

	if !s.RemoveFile(f.ID) {
		t.Error("RemoveFile() = false for existing file")
	}
	if s.RemoveFile(f.ID) {
		t.Error("RemoveFile() = true for removed file")
	}
	if len(s.Files()) != 0 {
		t.Errorf("Files() = %v, want empty", s.Files())
	}
}

func TestUploadedFile_ErrorsBlockConfirm(t *testing.T) {
	f := NewUploadedFile("customer_list.csv", 32, "Name,Phone\nJohn,555-1234")

	if len(f.Errors) == 0 {
		t.Fatal("expected validation errors for missing Email column")
	}
	if f.Uploadable() {
		t.Error("file with validation errors reported uploadable")
	}
}

func TestUploadedFile_KindAndSuggestion(t *testing.T) {
	// Misnamed file: name says nothing (defaults to sales), content is
	// clearly customers. The binding kind stays sales; the suggestion
	// points at customers.
	f := NewUploadedFile("data.csv", 32, "Name,Email\nJohn,john@example.com")

	if f.Kind != "sales" {
		t.Errorf("Kind = %v, want sales (name-heuristic default)", f.Kind)
	}
	if f.SuggestedKind != "customers" {
		t.Errorf("SuggestedKind = %v, want customers", f.SuggestedKind)
	}
}
