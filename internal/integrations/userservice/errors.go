package userservice

import "errors"

var (
	// ErrUserNotFound is returned when the directory has no such user.
	ErrUserNotFound = errors.New("userservice client: user not found")

	// ErrInternal covers failures building or sending the request.
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse covers unexpected status codes and bad payloads.
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded is returned when the directory is unreachable and
	// the caller should proceed without profile data.
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
