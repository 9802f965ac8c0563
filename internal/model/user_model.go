package model

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	UserID       int64      `json:"user_id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Role         string     `json:"role"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
