// Package common defines shared sentinel errors used across the greeter
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Request errors.
	ErrorMissingParameter = errors.New("missing parameter")
	ErrorInvalidID        = errors.New("invalid id")

	ErrorInternal = errors.New("internal error")
)
