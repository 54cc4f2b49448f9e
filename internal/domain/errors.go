package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrReviewerInactive   = errors.New("reviewer account is inactive")
	ErrUnknownDomain      = errors.New("unknown permit domain")
	ErrUnknownStatus      = errors.New("status is not in the domain's vocabulary")
	ErrTerminalState      = errors.New("application is in a terminal state")
	ErrValidation         = errors.New("required field is missing")
	ErrVersionConflict    = errors.New("application was modified by another reviewer")
)
