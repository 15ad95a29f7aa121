package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
// A lost delivery claim is reported with it.
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrForbidden indicates the actor is not allowed to perform the operation,
// e.g. a partner that has not been approved tries to claim a delivery.
var ErrForbidden = errors.New("forbidden")
