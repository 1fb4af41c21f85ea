// Package common defines shared constants and sentinel errors used across
// client layers of the storefront. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Input validation errors.
	ErrEmptyArgument   = errors.New("empty argument")
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
	ErrInvalidID       = errors.New("id must be a positive number")

	// Token inspection errors.
	ErrInvalidToken = errors.New("invalid token")
)
