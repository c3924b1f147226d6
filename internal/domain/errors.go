package domain

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidPlan     = errors.New("invalid plan")
	ErrInvalidScreen   = errors.New("invalid screen")
	ErrInvalidDate     = errors.New("invalid date")
)
