// Package common defines shared sentinel errors used across the client core.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Auth errors. ErrInvalidCredentials is deliberately generic: login must
	// not reveal whether the email or the secret was wrong.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
