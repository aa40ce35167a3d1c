package finance

import (
	"context"

	"fintrack/internal/core"
)

// Ports consumed by the HTTP layer; internal/storage provides the SQLite
// implementations.
type (
	// TransactionStore persists the ledger.
	TransactionStore interface {
		// CreateTransaction inserts a row and returns its id.
		CreateTransaction(ctx context.Context, t core.Transaction) (int64, error)
		// GetTransaction returns core.ErrNotFound for an unknown id.
		GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
		// ListTransactions returns all rows in ascending id order.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		// UpdateTransaction overwrites every field of the row identified by
		// t.ID and reports whether a row was matched.
		UpdateTransaction(ctx context.Context, t core.Transaction) (bool, error)
		// DeleteTransaction reports whether a row was matched.
		DeleteTransaction(ctx context.Context, id int64) (bool, error)
		// Totals sums income and expense rows, zero on an empty table.
		Totals(ctx context.Context) (core.Totals, error)
	}

	// BudgetStore persists budgets and savings goals, both append-only.
	BudgetStore interface {
		CreateBudget(ctx context.Context, b core.Budget) (int64, error)
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		CreateGoal(ctx context.Context, g core.SavingsGoal) (int64, error)
		ListGoals(ctx context.Context) ([]core.SavingsGoal, error)
	}

	// UserStore persists credentials in the separate users database.
	UserStore interface {
		// CreateUser returns core.ErrDuplicateUsername when the username is
		// already taken.
		CreateUser(ctx context.Context, username, passwordDigest string) (int64, error)
		// GetUserByUsername returns core.ErrNotFound for an unknown username.
		GetUserByUsername(ctx context.Context, username string) (core.User, error)
		GetUser(ctx context.Context, id int64) (core.User, error)
	}
)
