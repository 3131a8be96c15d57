// Package common defines shared sentinel errors used across the service and
// HTTP layers of timekeeper. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal   = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Uniqueness violations. The specific variants wrap ErrConflict so the
	// HTTP layer can match the whole family with a single errors.Is.
	ErrConflict      = errors.New("already exists")
	ErrUsernameTaken = fmt.Errorf("username %w", ErrConflict)
	ErrEmailTaken    = fmt.Errorf("email %w", ErrConflict)

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrPasswordMismatch   = errors.New("old password is incorrect")
)
