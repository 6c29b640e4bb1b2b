// Package common defines shared constants and sentinel errors used across
// speechauth layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Validation errors (malformed or missing fields).
	ErrorInvalidInput = errors.New("invalid input")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid signature or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Translation collaborator errors.
	ErrTranslatorUnavailable = errors.New("translator unavailable")
)
