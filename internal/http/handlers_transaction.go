package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/events"
)

// handleAddTransaction renders the entry form on GET and creates a
// transaction on POST, redirecting back to the dashboard.
func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data := struct{ Flashes []auth.Flash }{Flashes: s.sessions.Flashes(w, r)}
		s.render(w, r, "add.html", data)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		// Same-request notice: a session flash would only show up one
		// redirect later.
		w.WriteHeader(http.StatusUnprocessableEntity)
		data := struct{ Flashes []auth.Flash }{Flashes: []auth.Flash{{Kind: "danger", Message: "Invalid amount"}}}
		s.render(w, r, "add.html", data)
		return
	}

	t := core.Transaction{
		Type:        sanitizeInput(r.Form.Get("type")),
		Category:    sanitizeInput(r.Form.Get("category")),
		Amount:      amount,
		Date:        sanitizeInput(r.Form.Get("date")),
		Description: sanitizeInput(r.Form.Get("description")),
	}

	id, err := s.transactions.CreateTransaction(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create transaction error", "error", err,
			"type", t.Type, "category", t.Category)
		http.Error(w, "failed to save transaction", http.StatusInternalServerError)
		return
	}

	s.publishLedgerEvent(r, events.ActionCreated, id, t)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleEditTransaction overwrites all fields of an existing transaction.
// Responds with JSON {success, message?}; a miss is success=false, not an
// HTTP error.
func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": "invalid form data"})
		return
	}

	id, err := strconv.ParseInt(r.Form.Get("transaction_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"success": false, "message": "invalid transaction id"})
		return
	}
	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"success": false, "message": "invalid amount"})
		return
	}

	t := core.Transaction{
		ID:          id,
		Type:        sanitizeInput(r.Form.Get("type")),
		Category:    sanitizeInput(r.Form.Get("category")),
		Amount:      amount,
		Date:        sanitizeInput(r.Form.Get("date")),
		Description: sanitizeInput(r.Form.Get("description")),
	}

	matched, err := s.transactions.UpdateTransaction(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Update transaction error", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "update failed"})
		return
	}
	if !matched {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": "Transaction not found"})
		return
	}

	s.publishLedgerEvent(r, events.ActionUpdated, id, t)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleDeleteTransaction removes a transaction by id. A miss is a 404
// with a JSON body.
func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Transaction not found"})
		return
	}

	matched, err := s.transactions.DeleteTransaction(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete transaction error", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "delete failed"})
		return
	}
	if !matched {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Transaction not found"})
		return
	}

	s.publishLedgerEvent(r, events.ActionDeleted, id, core.Transaction{})
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleGetTransaction returns the JSON representation of one transaction.
func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Transaction not found"})
		return
	}

	t, err := s.transactions.GetTransaction(r.Context(), id)
	if errors.Is(err, core.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Transaction not found"})
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Get transaction error", "error", err, "id", id)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "lookup failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":          t.ID,
		"type":        t.Type,
		"category":    t.Category,
		"amount":      t.Amount,
		"date":        t.Date,
		"description": t.Description,
	})
}

// publishLedgerEvent notifies the event publisher best-effort: failures
// are logged and never surfaced to the request.
func (s *Server) publishLedgerEvent(r *http.Request, action string, id int64, t core.Transaction) {
	e := events.NewLedgerEvent(action, id)
	e.Type = t.Type
	e.Category = t.Category
	e.Amount = t.Amount
	if err := s.events.Publish(r.Context(), e); err != nil {
		slog.WarnContext(r.Context(), "Failed to publish ledger event",
			"error", err, "action", action, "id", id)
	}
}
