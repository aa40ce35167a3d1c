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

// UserRepository is the SQLite store for credentials. It lives in its own
// database file, fully independent from the ledger.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(dbPath string) (*UserRepository, error) {
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

	if err := runMigrations(dbPath, userMigrationsFS, "migrations/users"); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &UserRepository{db: db}, nil
}

func (r *UserRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser stores a username and password digest. Returns
// core.ErrDuplicateUsername when the username is already taken.
func (r *UserRepository) CreateUser(ctx context.Context, username, passwordDigest string) (int64, error) {
	if _, err := r.GetUserByUsername(ctx, username); err == nil {
		return 0, core.ErrDuplicateUsername
	} else if !errors.Is(err, core.ErrNotFound) {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_digest) VALUES (?, ?)`,
		username, passwordDigest)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "id", id, "username", username)
	return id, nil
}

// GetUserByUsername returns core.ErrNotFound for an unknown username.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_digest FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.PasswordDigest)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetUser(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_digest FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.PasswordDigest)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}
