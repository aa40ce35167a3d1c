// Package auth provides credential hashing and cookie-backed sessions.
//
// Sessions are signed cookies (gorilla/sessions CookieStore): the user id
// of an authenticated session plus one-time flash notices for the page
// routes. There is no server-side session store.
package auth

import (
	"context"
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "fintrack_session"

type contextKey string

// UserIDKey carries the authenticated user id in the request context.
const UserIDKey contextKey = "user_id"

// Flash is a one-time notice rendered by the next page load.
type Flash struct {
	Kind    string // "success" or "danger"
	Message string
}

func init() {
	gob.Register(Flash{})
}

// SessionManager wraps the cookie store and owns the session lifecycle:
// Anonymous -> Authenticated on SignIn, back to Anonymous on SignOut.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret []byte) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

// SignIn binds the session to the given user id.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID int64) error {
	// CookieStore.Get only fails on a bad signature; start fresh in that case
	sess, _ := m.store.Get(r, sessionName)
	sess.Values["user_id"] = userID
	return sess.Save(r, w)
}

// SignOut clears the session unconditionally.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, sessionName)
	delete(sess.Values, "user_id")
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// CurrentUserID reports the authenticated user id, if any.
func (m *SessionManager) CurrentUserID(r *http.Request) (int64, bool) {
	sess, err := m.store.Get(r, sessionName)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values["user_id"].(int64)
	return id, ok
}

// AddFlash queues a one-time notice for the next page render.
func (m *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	sess, _ := m.store.Get(r, sessionName)
	sess.AddFlash(Flash{Kind: kind, Message: message})
	if err := sess.Save(r, w); err != nil {
		slog.ErrorContext(r.Context(), "Failed to save flash", "error", err)
	}
}

// Flashes drains queued notices, saving the session to consume them.
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess, _ := m.store.Get(r, sessionName)
	raw := sess.Flashes()
	if len(raw) > 0 {
		if err := sess.Save(r, w); err != nil {
			slog.ErrorContext(r.Context(), "Failed to consume flashes", "error", err)
		}
	}
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

// RequireAuth redirects anonymous requests to /login and adds the user id
// to the request context for authenticated ones.
func (m *SessionManager) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.CurrentUserID(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}
