package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Domain lookups
	ErrPetNotFound  = errors.New("pet not found")
	ErrUserNotFound = errors.New("user not found")

	// Validation and state-machine misuse
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid state transition")

	// Account state errors
	ErrAccountBlocked  = errors.New("account is blocked")
	ErrAccountInactive = errors.New("account is inactive")

	// Password reset
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
