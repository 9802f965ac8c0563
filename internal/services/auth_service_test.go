package services

import (
	"context"
	"testing"

	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type rejectAll struct{}

func (rejectAll) Validate(context.Context, string) error {
	return model.Invalid("disposable email is not allowed")
}

func userRows(hash string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"user_id", "email", "password_hash", "first_name", "last_name", "role", "created_at"}).
		AddRow(int64(1), "ada@example.com", hash, "Ada", "Lovelace", model.RoleAdmin, nil)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		svc := NewAuthService(repository.NewUserRepository(mock), nil)
		mock.ExpectQuery(`FROM users WHERE email=\$1`).WithArgs("ada@example.com").WillReturnRows(userRows(string(hash)))

		token, u, err := svc.Login(context.Background(), " Ada@Example.com ", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Empty(t, u.PasswordHash)
		assert.Equal(t, model.RoleAdmin, u.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock := newMock(t)
		svc := NewAuthService(repository.NewUserRepository(mock), nil)
		mock.ExpectQuery(`FROM users WHERE email=\$1`).WithArgs("ada@example.com").WillReturnRows(userRows(string(hash)))

		_, _, err := svc.Login(context.Background(), "ada@example.com", "nope")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mock := newMock(t)
		svc := NewAuthService(repository.NewUserRepository(mock), nil)
		mock.ExpectQuery(`FROM users WHERE email=\$1`).WithArgs("who@example.com").WillReturnError(pgx.ErrNoRows)

		_, _, err := svc.Login(context.Background(), "who@example.com", "whatever1")
		assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	})
}

func TestRegister(t *testing.T) {
	t.Run("creates customer", func(t *testing.T) {
		mock := newMock(t)
		svc := NewAuthService(repository.NewUserRepository(mock), nil)
		mock.ExpectQuery(`SELECT EXISTS`).WithArgs("new@example.com").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("new@example.com", pgxmock.AnyArg(), "New", "Shopper", model.RoleCustomer, pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(3)))

		id, err := svc.Register(context.Background(), &model.User{Email: "New@example.com", FirstName: "New", LastName: "Shopper"}, "password123")
		require.NoError(t, err)
		assert.Equal(t, int64(3), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("short password", func(t *testing.T) {
		svc := NewAuthService(repository.NewUserRepository(newMock(t)), nil)
		_, err := svc.Register(context.Background(), &model.User{Email: "a@example.com"}, "short")
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("validator rejects", func(t *testing.T) {
		svc := NewAuthService(repository.NewUserRepository(newMock(t)), rejectAll{})
		_, err := svc.Register(context.Background(), &model.User{Email: "a@mailinator.com"}, "password123")
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock := newMock(t)
		svc := NewAuthService(repository.NewUserRepository(mock), nil)
		mock.ExpectQuery(`SELECT EXISTS`).WithArgs("a@example.com").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		_, err := svc.Register(context.Background(), &model.User{Email: "a@example.com"}, "password123")
		assert.ErrorIs(t, err, model.ErrValidation)
	})
}
