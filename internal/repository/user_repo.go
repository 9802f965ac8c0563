package repository

import (
	"context"
	"time"

	"GearGodAPI/internal/model"

	"github.com/pkg/errors"
)

type UserRepository struct {
	DB Pool
}

func NewUserRepository(db Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new user and returns the created id
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) (int64, error) {
	var id int64
	query := `INSERT INTO users (email, password_hash, first_name, last_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING user_id`
	if err := r.DB.QueryRow(ctx, query, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, time.Now()).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "insert user")
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT user_id, email, password_hash, first_name, last_name, role, created_at
		FROM users WHERE email=$1`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.FirstName,
		&u.LastName, &u.Role, &u.CreatedAt); err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	query := `SELECT user_id, email, first_name, last_name, role, created_at FROM users WHERE user_id=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&u.UserID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt); err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
