// Package common defines the sentinel errors shared across the service and
// handler layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Credential errors.
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Session errors.
	ErrNoSession = errors.New("no active session")

	// Catalog errors.
	ErrCatalogUnavailable = errors.New("card catalog unavailable")

	// Selection errors.
	ErrMalformedSelection = errors.New("malformed selection label")
	ErrPriceUnresolved    = errors.New("could not resolve price for selection")

	// Collection errors.
	ErrDuplicateEntry     = errors.New("card already in collection")
	ErrStorageUnavailable = errors.New("collection storage unavailable")
)
