package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/bizsight/bizsight/internal/auth"
	"github.com/bizsight/bizsight/internal/logging"
	"github.com/bizsight/bizsight/internal/session"
	appmw "github.com/bizsight/bizsight/internal/web/middleware"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleSignup registers a new account.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailInUse) {
			writeError(w, http.StatusBadRequest, "Email already in use")
			return
		}
		logging.FromContext(r.Context()).Error("signup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	logging.FromContext(r.Context()).Info("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

// handleLogin authenticates a user and starts a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logging.FromContext(r.Context()).Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	sess := s.sessions.Create(user)
	http.SetCookie(w, s.sessionCookie(sess.Token, s.cfg.Security.SessionTTL))

	logging.FromContext(r.Context()).Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, user)
}

// handleLogout destroys the current session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := appmw.SessionFrom(r.Context())
	s.sessions.Destroy(sess.Token)
	http.SetCookie(w, s.sessionCookie("", -time.Hour))
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleMe returns the authenticated user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, appmw.SessionFrom(r.Context()).User)
}

// sessionCookie builds the session cookie. A negative maxAge clears it.
func (s *Server) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
