// Package session implements cookie-token login sessions and owns the
// transient per-session state the dashboard works on: the manual-entry
// pending list and the uploaded-file list. State lives only for the life of
// the session; nothing here is persisted or shared across users.
package session

import (
	"sync"
	"time"

	"github.com/bizsight/bizsight/internal/auth"
	"github.com/bizsight/bizsight/internal/entry"
	"github.com/google/uuid"
)

// CookieName is the session cookie set on login.
const CookieName = "bizsight_session"

// Session is one authenticated browser session.
type Session struct {
	Token     string
	User      auth.User
	CreatedAt time.Time

	// Pending holds validated manual entries awaiting a bulk save.
	Pending *entry.PendingList

	mu        sync.Mutex
	files     []*UploadedFile
	expiresAt time.Time
}

// AddFile records an uploaded file in the session.
func (s *Session) AddFile(f *UploadedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, f)
}

// File returns the uploaded file with the given ID, or nil.
func (s *Session) File(id uuid.UUID) *UploadedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.files {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// RemoveFile deletes the uploaded file with the given ID.
// Returns false if no such file exists.
func (s *Session) RemoveFile(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.files {
		if f.ID == id {
			s.files = append(s.files[:i], s.files[i+1:]...)
			return true
		}
	}
	return false
}

// Files returns a snapshot of the session's uploaded files.
func (s *Session) Files() []*UploadedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*UploadedFile, len(s.files))
	copy(out, s.files)
	return out
}

// Manager issues, resolves, and expires sessions. Expired sessions are
// reaped periodically so abandoned logins do not pin their upload state
// in memory forever.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewManager creates a session manager and starts its reaper goroutine.
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go m.reap()
	return m
}

// Create starts a new session for a user and returns it.
func (m *Manager) Create(user auth.User) *Session {
	now := time.Now()
	s := &Session{
		Token:     uuid.NewString(),
		User:      user,
		CreatedAt: now,
		Pending:   entry.NewPendingList(),
		expiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return s
}

// Get resolves a session token. Expired sessions are treated as absent
// and removed.
func (m *Manager) Get(token string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, false
	}
	if time.Now().After(s.expiresAt) {
		delete(m.sessions, token)
		return nil, false
	}
	return s, true
}

// Destroy removes a session, dropping all its transient state.
func (m *Manager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Stop terminates the reaper goroutine.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// reap removes expired sessions every minute.
func (m *Manager) reap() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for token, s := range m.sessions {
				if now.After(s.expiresAt) {
					delete(m.sessions, token)
				}
			}
			m.mu.Unlock()
		}
	}
}
