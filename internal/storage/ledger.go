package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// LedgerRepository is the SQLite store for transactions, budgets and
// savings goals. Connections are pooled by database/sql; individual
// requests borrow and return them implicitly per statement.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(dbPath string) (*LedgerRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath, ledgerMigrationsFS, "migrations/ledger"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &LedgerRepository{db: db}, nil
}

func (r *LedgerRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTransaction implements finance.TransactionStore.
func (r *LedgerRepository) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (type, category, amount, date, description)
		 VALUES (?, ?, ?, ?, ?)`,
		t.Type, t.Category, t.Amount, t.Date, t.Description)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"type", t.Type,
		"category", t.Category,
		"amount", t.Amount)

	return id, nil
}

// GetTransaction returns core.ErrNotFound for an unknown id.
func (r *LedgerRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var t core.Transaction
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, type, category, amount, date, description
		 FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &t.Type, &t.Category, &t.Amount, &t.Date, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	t.Description = desc.String
	return t, nil
}

// ListTransactions returns all rows in insertion (ascending id) order.
func (r *LedgerRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, category, amount, date, description
		 FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var t core.Transaction
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.Type, &t.Category, &t.Amount, &t.Date, &desc); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Description = desc.String
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

// UpdateTransaction overwrites all fields of the row identified by t.ID and
// reports whether a row was matched. A miss is not an error.
func (r *LedgerRepository) UpdateTransaction(ctx context.Context, t core.Transaction) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET type = ?, category = ?, amount = ?, date = ?, description = ?
		 WHERE id = ?`,
		t.Type, t.Category, t.Amount, t.Date, t.Description, t.ID)
	if err != nil {
		return false, fmt.Errorf("update transaction %d: %w", t.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteTransaction reports whether a row was matched.
func (r *LedgerRepository) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Transaction deleted", "id", id)
	}
	return n > 0, nil
}

// Totals sums income and expense rows. COALESCE keeps an empty table at
// zero instead of NULL.
func (r *LedgerRepository) Totals(ctx context.Context) (core.Totals, error) {
	var t core.Totals
	err := r.db.QueryRowContext(ctx,
		`SELECT
		   COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0),
		   COALESCE(SUM(CASE WHEN type = 'expense' THEN amount END), 0)
		 FROM transactions`).
		Scan(&t.Income, &t.Expense)
	if err != nil {
		return core.Totals{}, fmt.Errorf("compute totals: %w", err)
	}
	t.Balance = t.Income - t.Expense
	return t, nil
}

// CreateBudget implements finance.BudgetStore.
func (r *LedgerRepository) CreateBudget(ctx context.Context, b core.Budget) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (category, budget_limit) VALUES (?, ?)`,
		b.Category, b.Limit)
	if err != nil {
		return 0, fmt.Errorf("insert budget: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved", "id", id, "category", b.Category, "limit", b.Limit)
	return id, nil
}

func (r *LedgerRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category, budget_limit FROM budgets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.Limit); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

// CreateGoal implements finance.BudgetStore.
func (r *LedgerRepository) CreateGoal(ctx context.Context, g core.SavingsGoal) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO savings_goals (goal_name, target_amount, current_savings, due_date)
		 VALUES (?, ?, ?, ?)`,
		g.Name, g.Target, g.Current, g.DueDate)
	if err != nil {
		return 0, fmt.Errorf("insert savings goal: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Savings goal saved", "id", id, "name", g.Name, "target", g.Target)
	return id, nil
}

func (r *LedgerRepository) ListGoals(ctx context.Context) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, goal_name, target_amount, current_savings, due_date
		 FROM savings_goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var goals []core.SavingsGoal
	for rows.Next() {
		var g core.SavingsGoal
		var due sql.NullString
		if err := rows.Scan(&g.ID, &g.Name, &g.Target, &g.Current, &due); err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		g.DueDate = due.String
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate savings goals: %w", err)
	}
	return goals, nil
}
