package core

import "errors"

// Transaction types recognized by the ledger. The storage layer accepts any
// string; these constants are what the forms submit and what totals sum over.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type (
	// Transaction is a single income or expense record. Date is kept as the
	// caller-supplied string and never normalized.
	Transaction struct {
		ID          int64
		Type        string
		Category    string
		Amount      float64
		Date        string
		Description string
	}

	// Budget is a spending ceiling for a category. Rows are append-only and
	// categories may repeat.
	Budget struct {
		ID       int64
		Category string
		Limit    float64
	}

	// SavingsGoal is a named target amount with tracked progress. DueDate is
	// optional and free-form.
	SavingsGoal struct {
		ID      int64
		Name    string
		Target  float64
		Current float64
		DueDate string
	}

	// Totals aggregates the ledger. Balance is always Income minus Expense.
	Totals struct {
		Income  float64
		Expense float64
		Balance float64
	}

	// User is a stored credential pair. PasswordDigest is a bcrypt hash,
	// never the plaintext password.
	User struct {
		ID             int64
		Username       string
		PasswordDigest string
	}
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
