package domain

import "errors"

// Common errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidID           = errors.New("invalid id")
	ErrForbidden           = errors.New("access forbidden: you don't own this resource")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrNoActiveGoal        = errors.New("no active weight goal")
)
