package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/auth"
	"fintrack/internal/core"
)

// transactionView carries a pre-formatted amount for the templates.
type transactionView struct {
	ID          int64
	Type        string
	Category    string
	Amount      string
	Date        string
	Description string
}

func newTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Type:        t.Type,
		Category:    t.Category,
		Amount:      core.FormatAmount(t.Amount),
		Date:        t.Date,
		Description: t.Description,
	}
}

// handleDashboard renders the transaction list, totals and budget limits.
// Budget rows come from the budgets table, not a hard-coded map.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
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

	totals, err := s.transactions.Totals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Compute totals error", "error", err)
		http.Error(w, "failed to compute totals", http.StatusInternalServerError)
		return
	}

	budgets, err := s.budgets.ListBudgets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List budgets error", "error", err)
		http.Error(w, "failed to load budgets", http.StatusInternalServerError)
		return
	}

	type budgetView struct {
		Category string
		Limit    string
	}
	data := struct {
		Transactions []transactionView
		Income       string
		Expense      string
		Balance      string
		Budgets      []budgetView
		Flashes      []auth.Flash
	}{
		Income:  core.FormatAmount(totals.Income),
		Expense: core.FormatAmount(totals.Expense),
		Balance: core.FormatAmount(totals.Balance),
		Flashes: s.sessions.Flashes(w, r),
	}
	for _, t := range txs {
		data.Transactions = append(data.Transactions, newTransactionView(t))
	}
	for _, b := range budgets {
		data.Budgets = append(data.Budgets, budgetView{Category: b.Category, Limit: core.FormatAmount(b.Limit)})
	}

	s.render(w, r, "index.html", data)
}
