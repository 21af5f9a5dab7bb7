package service

import "errors"

// Sentinel errors shared by the services. Handlers map these onto HTTP
// status codes with errors.Is.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")

	ErrRestaurantNotFound = errors.New("restaurant not found")

	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("restaurant already reviewed by this user, use update instead")

	// ErrForbidden means the caller is authenticated but is neither the
	// resource owner nor an admin.
	ErrForbidden = errors.New("permission denied")

	// ErrInvalidInput is wrapped by validation failures so handlers can
	// map any of them to a 400 without enumerating messages.
	ErrInvalidInput = errors.New("invalid input")
)
