package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// Staff roles stored in users.role.
const (
	RoleAdmin = "ADMIN"
	RoleClerk = "CLERK"
)

// User mirrors the 'users' table.  Users are front-desk staff; hotel guests
// are customers and never log in.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var (
	ErrEmailExists  = errors.New("email already exists")
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
)

// NormalizeRole maps free-form input onto a known role, defaulting to CLERK.
func NormalizeRole(role string) string {
	if strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
		return RoleAdmin
	}
	return RoleClerk
}

// Create hashes password and inserts the user, returning its ID.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role) VALUES (?,?,?)",
		email, hash, NormalizeRole(role))
	if err != nil {
		if database.IsDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Count returns the number of staff accounts.  Registration uses it to make
// the very first account an administrator.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

const userColumns = "id,email,password_hash,role,is_active,created_at,updated_at"

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+where+"=? LIMIT 1", arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, notFound(err, ErrUserNotFound)
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	return r.getOne(ctx, "id", id)
}
