package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/export"
)

// handleExportCSV streams all transactions as a CSV attachment.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	txs, err := s.transactions.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename=transactions.csv")
	if err := export.WriteCSV(w, txs); err != nil {
		// Headers are already out; nothing useful left to send.
		slog.ErrorContext(r.Context(), "CSV export error", "error", err)
	}
}

// handleExportPDF renders all transactions as a PDF attachment.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	txs, err := s.transactions.ListTransactions(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List transactions error", "error", err)
		http.Error(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment;filename=transactions.pdf")
	if err := export.WritePDF(w, txs); err != nil {
		slog.ErrorContext(r.Context(), "PDF export error", "error", err)
	}
}
