package core

import "errors"

// Common errors.
var (
	ErrReadOnly           = errors.New("repository is in read-only mode")
	ErrNotFound           = errors.New("notebook not found")
	ErrMalformedDocument  = errors.New("malformed notebook document")
	ErrStorageUnavailable = errors.New("notebook storage unavailable")
)
