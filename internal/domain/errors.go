package domain

import "errors"

// ErrNotFound is returned by service functions when the requested
// resource (instructor, slot, snapshot) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing name, unknown group, malformed date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
//
// Note: advisory scheduling warnings (double-booking, unavailable date) are
// NOT errors — they are returned as plain string lists and the caller decides
// whether to proceed.
var ErrValidation = errors.New("validation error")
