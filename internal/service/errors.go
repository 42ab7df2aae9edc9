package service

import "errors"

// Domain errors surfaced by UserService. Handlers check these with
// errors.Is and translate them into HTTP status codes; any other error
// is an unexpected storage failure and maps to a 500.
var (
	// ErrUserNotFound means the requested id or email has no matching record.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail means a create or update collides with an email
	// that already belongs to another user.
	ErrDuplicateEmail = errors.New("email already exists")
)
