package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes.
var (
	// ErrDuplicateEmail is returned when a registration or creation uses an
	// email that already belongs to another user.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidRole is returned when a registration names an unknown role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrOfficeInUse is returned when deleting an office that still has
	// attached staff or open service requests.
	ErrOfficeInUse = errors.New("office has attached staff or active service requests")

	// ErrInvalidCredentials is returned on failed login attempts.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
