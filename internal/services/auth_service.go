package services

import (
	"context"
	"regexp"
	"strings"

	"GearGodAPI/internal/middleware"
	"GearGodAPI/internal/model"
	"GearGodAPI/internal/repository"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 8
	tokenTTLHours  = 24
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

type AuthService struct {
	Users     *repository.UserRepository
	Validator EmailValidator
}

func NewAuthService(u *repository.UserRepository, v EmailValidator) *AuthService {
	if v == nil {
		v = NewLocalValidator()
	}
	return &AuthService{Users: u, Validator: v}
}

func validateEmail(email string) error {
	if email == "" {
		return model.Invalid("email is required")
	}
	if !emailRegex.MatchString(email) {
		return model.Invalid("invalid email format")
	}
	return nil
}

// Register creates a user account. Role defaults to customer.
func (s *AuthService) Register(ctx context.Context, u *model.User, password string) (int64, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := validateEmail(u.Email); err != nil {
		return 0, err
	}
	if err := s.Validator.Validate(ctx, u.Email); err != nil {
		return 0, err
	}
	if len(password) < MinPasswordLen {
		return 0, model.Invalid("password too short: must be at least %d characters", MinPasswordLen)
	}
	if u.Role == "" {
		u.Role = model.RoleCustomer
	}
	if u.Role != model.RoleCustomer && u.Role != model.RoleAdmin {
		return 0, model.Invalid("unknown role %q", u.Role)
	}
	exists, err := s.Users.EmailExists(ctx, u.Email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, model.Invalid("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, errors.Wrap(err, "hash password")
	}
	u.PasswordHash = string(hash)
	return s.Users.CreateUser(ctx, u)
}

// Login authenticates using email + password and returns a signed token with the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// do not reveal whether email exists
			return "", nil, model.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, model.ErrInvalidCredentials
	}
	u.PasswordHash = ""

	token, err := middleware.GenerateToken(u.UserID, u.Email, u.Role, tokenTTLHours)
	if err != nil {
		return "", nil, errors.Wrap(err, "sign token")
	}
	return token, u, nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	return s.Users.GetByID(ctx, userID)
}
