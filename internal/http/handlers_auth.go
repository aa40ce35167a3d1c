package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/auth"
	"fintrack/internal/core"
)

// One message for unknown user and wrong password alike.
const loginFailedMessage = "Login unsuccessful. Please check your username and password"

// handleSignup registers a credential pair. Signup never establishes a
// session; the user logs in separately.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data := struct{ Flashes []auth.Flash }{Flashes: s.sessions.Flashes(w, r)}
		s.render(w, r, "signup.html", data)
	case http.MethodPost:
		s.createUser(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	username := sanitizeInput(r.Form.Get("username"))
	password := r.Form.Get("password")

	digest, err := auth.HashPassword(password)
	if err != nil {
		slog.ErrorContext(r.Context(), "Password hashing error", "error", err)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	_, err = s.users.CreateUser(r.Context(), username, digest)
	if errors.Is(err, core.ErrDuplicateUsername) {
		s.sessions.AddFlash(w, r, "danger", "Username already exists. Please choose a different one.")
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Create user error", "error", err, "username", username)
		http.Error(w, "signup failed", http.StatusInternalServerError)
		return
	}

	s.sessions.AddFlash(w, r, "success", "Signup successful! You can now login.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLogin verifies credentials and establishes the session on success.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data := struct{ Flashes []auth.Flash }{Flashes: s.sessions.Flashes(w, r)}
		s.render(w, r, "login.html", data)
	case http.MethodPost:
		s.loginUser(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	username := sanitizeInput(r.Form.Get("username"))
	password := r.Form.Get("password")

	user, err := s.users.GetUserByUsername(r.Context(), username)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		slog.ErrorContext(r.Context(), "User lookup error", "error", err, "username", username)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	if errors.Is(err, core.ErrNotFound) || auth.VerifyPassword(user.PasswordDigest, password) != nil {
		slog.InfoContext(r.Context(), "Login rejected", "username", username)
		s.sessions.AddFlash(w, r, "danger", loginFailedMessage)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := s.sessions.SignIn(w, r, user.ID); err != nil {
		slog.ErrorContext(r.Context(), "Session save error", "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "User logged in", "user_id", user.ID, "username", username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout clears the session unconditionally.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := s.sessions.SignOut(w, r); err != nil {
		slog.ErrorContext(r.Context(), "Session clear error", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
