package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	tt "task_tracker"
	"task_tracker/internal/models"
	"task_tracker/internal/repository/db"
)

type UserRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewUserRepository(conn *sql.DB, d db.Dialect) *UserRepository {
	return &UserRepository{db: conn, dialect: d}
}

// Ensure implementation of UserRepo interface at compile time.
var _ UserRepo = (*UserRepository)(nil)

const (
	userColumns = `id, email, password_hash, full_name, role, created_at`

	insertUserSQL         = `INSERT INTO users (id, email, password_hash, full_name, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectUserByEmailSQL  = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	selectUserByIDSQL     = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	updatePasswordHashSQL = `UPDATE users SET password_hash = ? WHERE id = ?`
)

// Create inserts a new user. A unique-constraint rejection is reported as tt.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertUserSQL),
		u.ID, u.Email, u.PasswordHash, nullString(u.FullName), u.Role, u.CreatedAt.UTC())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", u.Email, tt.ErrDuplicate)
		}
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.scanOne(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectUserByEmailSQL), email))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return u, nil
}

// GetByID fetches a user by primary key. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := r.scanOne(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectUserByIDSQL), id))
	if err != nil {
		return nil, fmt.Errorf("select user by id %q: %w", id, err)
	}
	return u, nil
}

// UpdatePasswordHash replaces the stored hash; the caller hashes.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(updatePasswordHashSQL), hash, id)
	if err != nil {
		return fmt.Errorf("update password for user %q: %w", id, err)
	}
	return expectOneRow(res, tt.ErrUserNotFound)
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	var (
		u        models.User
		fullName sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &fullName, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.FullName = fullName.String
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// expectOneRow turns a zero-row UPDATE/DELETE into notFound.
func expectOneRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
