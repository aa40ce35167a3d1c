package http

import (
	"log/slog"
	"net/http"

	"fintrack/internal/auth"
	"fintrack/internal/core"
)

// handleBudgeting lists budgets and savings goals on GET and appends a new
// budget and/or goal on POST, depending on which form fields are present.
func (s *Server) handleBudgeting(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderBudgeting(w, r)
	case http.MethodPost:
		s.createBudgetingEntries(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderBudgeting(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.ListBudgets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List budgets error", "error", err)
		http.Error(w, "failed to load budgets", http.StatusInternalServerError)
		return
	}
	goals, err := s.budgets.ListGoals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List savings goals error", "error", err)
		http.Error(w, "failed to load savings goals", http.StatusInternalServerError)
		return
	}

	type budgetView struct {
		ID       int64
		Category string
		Limit    string
	}
	type goalView struct {
		ID      int64
		Name    string
		Target  string
		Current string
		DueDate string
	}
	data := struct {
		Budgets []budgetView
		Goals   []goalView
		Flashes []auth.Flash
	}{Flashes: s.sessions.Flashes(w, r)}
	for _, b := range budgets {
		data.Budgets = append(data.Budgets, budgetView{ID: b.ID, Category: b.Category, Limit: core.FormatAmount(b.Limit)})
	}
	for _, g := range goals {
		data.Goals = append(data.Goals, goalView{
			ID:      g.ID,
			Name:    g.Name,
			Target:  core.FormatAmount(g.Target),
			Current: core.FormatAmount(g.Current),
			DueDate: g.DueDate,
		})
	}

	s.render(w, r, "budgeting.html", data)
}

func (s *Server) createBudgetingEntries(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "url", r.URL.Path)
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	// A single POST may carry a budget, a goal, or both.
	if r.Form.Has("category") && r.Form.Has("budget_limit") {
		limit, err := core.ParseAmount(r.Form.Get("budget_limit"))
		if err != nil {
			s.sessions.AddFlash(w, r, "danger", "Invalid budget limit")
			http.Redirect(w, r, "/budgeting", http.StatusSeeOther)
			return
		}
		b := core.Budget{Category: sanitizeInput(r.Form.Get("category")), Limit: limit}
		if _, err := s.budgets.CreateBudget(r.Context(), b); err != nil {
			slog.ErrorContext(r.Context(), "Create budget error", "error", err, "category", b.Category)
			http.Error(w, "failed to save budget", http.StatusInternalServerError)
			return
		}
	}

	if r.Form.Has("goal_name") && r.Form.Has("target_amount") && r.Form.Has("current_savings") {
		target, err := core.ParseAmount(r.Form.Get("target_amount"))
		if err != nil {
			s.sessions.AddFlash(w, r, "danger", "Invalid target amount")
			http.Redirect(w, r, "/budgeting", http.StatusSeeOther)
			return
		}
		current, err := core.ParseAmount(r.Form.Get("current_savings"))
		if err != nil {
			s.sessions.AddFlash(w, r, "danger", "Invalid current savings")
			http.Redirect(w, r, "/budgeting", http.StatusSeeOther)
			return
		}
		g := core.SavingsGoal{
			Name:    sanitizeInput(r.Form.Get("goal_name")),
			Target:  target,
			Current: current,
			DueDate: sanitizeInput(r.Form.Get("due_date")),
		}
		if _, err := s.budgets.CreateGoal(r.Context(), g); err != nil {
			slog.ErrorContext(r.Context(), "Create savings goal error", "error", err, "name", g.Name)
			http.Error(w, "failed to save savings goal", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/budgeting", http.StatusSeeOther)
}
