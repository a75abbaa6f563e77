package inkpress

import "errors"

// Sentinel errors returned by the store. Handlers match these with
// errors.Is to pick a response: ErrNotFound renders the 404 page,
// ErrInvalidArgument becomes a 400, ErrConflict and ErrUnavailable
// surface as 5xx without being swallowed.
var (
	// ErrNotFound is returned when an entry or comment index does not exist.
	ErrNotFound = errors.New("inkpress: not found")

	// ErrInvalidArgument is returned for malformed cursors, non-positive
	// batch sizes, and empty required fields.
	ErrInvalidArgument = errors.New("inkpress: invalid argument")

	// ErrConflict is returned when a write transaction exhausted its busy
	// retries without committing.
	ErrConflict = errors.New("inkpress: transaction conflict")

	// ErrUnavailable is returned when the database cannot be reached at all.
	ErrUnavailable = errors.New("inkpress: storage unavailable")
)
