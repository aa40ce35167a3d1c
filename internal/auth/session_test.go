package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// signedInRequest returns a request carrying a session cookie for userID.
func signedInRequest(t *testing.T, m *SessionManager, userID int64) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := m.SignIn(w, r, userID); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	return next
}

func TestSignInEstablishesSession(t *testing.T) {
	m := NewSessionManager(testSecret)

	r := signedInRequest(t, m, 7)
	id, ok := m.CurrentUserID(r)
	if !ok {
		t.Fatal("CurrentUserID: no session after SignIn")
	}
	if id != 7 {
		t.Errorf("CurrentUserID = %d, want 7", id)
	}
}

func TestAnonymousHasNoSession(t *testing.T) {
	m := NewSessionManager(testSecret)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := m.CurrentUserID(r); ok {
		t.Error("CurrentUserID reported a session for an anonymous request")
	}
}

func TestSignOutClearsSession(t *testing.T) {
	m := NewSessionManager(testSecret)

	r := signedInRequest(t, m, 7)
	w := httptest.NewRecorder()
	if err := m.SignOut(w, r); err != nil {
		t.Fatalf("SignOut: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	if _, ok := m.CurrentUserID(next); ok {
		t.Error("CurrentUserID reported a session after SignOut")
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	m := NewSessionManager(testSecret)

	called := false
	h := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) { called = true })

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if called {
		t.Error("protected handler ran for anonymous request")
	}
	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect location = %q, want /login", loc)
	}
}

func TestRequireAuthPassesUserID(t *testing.T) {
	m := NewSessionManager(testSecret)

	var gotID int64
	h := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = r.Context().Value(UserIDKey).(int64)
	})

	w := httptest.NewRecorder()
	h(w, signedInRequest(t, m, 11))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotID != 11 {
		t.Errorf("context user id = %d, want 11", gotID)
	}
}

func TestFlashesAreOneTime(t *testing.T) {
	m := NewSessionManager(testSecret)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/signup", nil)
	m.AddFlash(w, r, "success", "Signup successful! You can now login.")

	next := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	flashes := m.Flashes(w2, next)
	if len(flashes) != 1 {
		t.Fatalf("got %d flashes, want 1", len(flashes))
	}
	if flashes[0].Kind != "success" || flashes[0].Message == "" {
		t.Errorf("flash = %+v", flashes[0])
	}

	// Replaying with the consumed cookie yields nothing
	third := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range w2.Result().Cookies() {
		third.AddCookie(c)
	}
	if got := m.Flashes(httptest.NewRecorder(), third); len(got) != 0 {
		t.Errorf("flashes were not consumed: %+v", got)
	}
}
