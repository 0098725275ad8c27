package view

import (
	"errors"

	"github.com/bloops-games/achievements/internal/api"
)

// ValidationError is a local input problem caught before any backend call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ErrorMessage is the human-readable text of err shown to the user, without wrapping context.
func ErrorMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}

	return err.Error()
}
