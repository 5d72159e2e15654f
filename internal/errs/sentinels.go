// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across storage/session/api/checkout layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates a missing or rejected credential (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the session lacks a required role (HTTP 403).
	ErrForbidden = errors.New("forbidden")

	// ErrSessionExpired indicates the stored token is absent or past its expiry.
	ErrSessionExpired = errors.New("session expired")

	// ErrEmptyCart indicates checkout was attempted with no line items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoAddress indicates checkout was attempted before selecting an address.
	ErrNoAddress = errors.New("no delivery address selected")

	// ErrInvalidState indicates a checkout transition not allowed from the current state.
	ErrInvalidState = errors.New("invalid checkout state")
)
