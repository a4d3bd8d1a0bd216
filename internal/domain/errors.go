package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, rating outside 1..5, malformed time).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrDuplicateReview is returned when a user already has a review for the
// same target. The reviews table enforces this with a unique index, so the
// guarantee holds even under concurrent creates.
// Handlers should map this to HTTP 409.
var ErrDuplicateReview = errors.New("duplicate review")

// ErrForbidden is returned when an authenticated caller is not allowed to
// perform the operation (not the review author, or not an admin).
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized is returned when the caller presents no credentials or
// invalid credentials. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrEmailTaken is returned on registration when the email address already
// has an account. Handlers should map this to HTTP 409.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match. The two cases are deliberately
// indistinguishable to the caller. Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid email or password")
