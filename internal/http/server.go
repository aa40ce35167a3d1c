// Package http provides the HTTP server, routes and handlers.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/events"
	"fintrack/internal/finance"
	appweb "fintrack/web"
)

type Server struct {
	http.Server
	templates    *template.Template
	transactions finance.TransactionStore
	budgets      finance.BudgetStore
	users        finance.UserStore
	sessions     *auth.SessionManager
	events       events.Publisher
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, ts finance.TransactionStore, bs finance.BudgetStore, us finance.UserStore, sm *auth.SessionManager, pub events.Publisher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		transactions: ts,
		budgets:      bs,
		users:        us,
		sessions:     sm,
		events:       pub,
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	// Protected application routes
	mux.HandleFunc("/{$}", s.withRequestLog(sm.RequireAuth(s.handleDashboard)))
	mux.HandleFunc("/add", s.withRequestLog(sm.RequireAuth(s.handleAddTransaction)))
	mux.HandleFunc("/edit_transaction", s.withRequestLog(sm.RequireAuth(s.handleEditTransaction)))
	mux.HandleFunc("/delete/{id}", s.withRequestLog(sm.RequireAuth(s.handleDeleteTransaction)))
	mux.HandleFunc("/transaction/{id}", s.withRequestLog(sm.RequireAuth(s.handleGetTransaction)))
	mux.HandleFunc("/export/csv", s.withRequestLog(sm.RequireAuth(s.handleExportCSV)))
	mux.HandleFunc("/export/pdf", s.withRequestLog(sm.RequireAuth(s.handleExportPDF)))
	mux.HandleFunc("/budgeting", s.withRequestLog(sm.RequireAuth(s.handleBudgeting)))
	mux.HandleFunc("/logout", s.withRequestLog(sm.RequireAuth(s.handleLogout)))

	// Public routes
	mux.HandleFunc("/signup", s.withRequestLog(s.handleSignup))
	mux.HandleFunc("/login", s.withRequestLog(s.handleLogin))
	mux.HandleFunc("/contact", s.withRequestLog(s.handleContact))
	mux.HandleFunc("/home", s.withRequestLog(s.handleHome))

	return s
}

// withRequestLog adds security headers and request logging to responses.
func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// writeJSON renders v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// render executes a template, falling back to a 500 when templates failed
// to load or the execution fails mid-write.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
