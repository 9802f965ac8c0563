package services

import (
	"context"
	"net/mail"

	"GearGodAPI/internal/model"
)

// EmailValidator vets an address before an account is created for it.
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

// LocalValidator checks RFC 5322 syntax only.
type LocalValidator struct{}

func NewLocalValidator() *LocalValidator {
	return &LocalValidator{}
}

func (v *LocalValidator) Validate(_ context.Context, email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return model.Invalid("invalid email format")
	}
	return nil
}
