package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotel_climate/internal/models"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, phone, password_hash, salt) VALUES (?, ?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, phone, password_hash, salt FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, phone, password_hash, salt FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID. A taken username yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.Phone, u.PasswordHash, u.Salt)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, classify(err))
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := r.getOne(ctx, selectUserByUsernameSQL, username)
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := r.getOne(ctx, selectUserByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) getOne(ctx context.Context, q string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Username, &u.Phone, &u.PasswordHash, &u.Salt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, classify(err)
	}
	return &u, nil
}
