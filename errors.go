package alerts

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes give API clients a stable discriminator next to the HTTP status.
const (
	TextCodeNotAuthenticated    = "NOT_AUTHENTICATED"
	TextCodeInvalidCreds        = "INVALID_CREDENTIALS"
	TextCodeInvalidTokenPayload = "INVALID_TOKEN_PAYLOAD"
	TextCodeUserNotFound        = "USER_NOT_FOUND"
	TextCodeTokenExpired        = "TOKEN_EXPIRED"
	TextCodeTokenMalformed      = "TOKEN_MALFORMED"
)

// ErrNotAuthenticated is returned when a request carries no token material.
var ErrNotAuthenticated = errors.New("not authenticated", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeNotAuthenticated)

// ErrInvalidCredentials collapses every token verification failure the
// client has no business telling apart: bad signature, garbage structure,
// expired window.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidCreds)

// ErrInvalidTokenPayload is returned when a verified token carries no subject.
var ErrInvalidTokenPayload = errors.New("invalid token payload", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidTokenPayload)

// ErrUserNotFound is returned when a verified subject no longer exists.
var ErrUserNotFound = errors.New("user not found", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeUserNotFound)

// ErrInvalidEmailOrPassword is the uniform login failure. Unknown email and
// wrong password must be indistinguishable to the caller.
var ErrInvalidEmailOrPassword = errors.New("invalid email or password", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest).
	WithTextCode(TextCodeInvalidCreds)

// ErrMismatchedHashAndPassword is the credential verifier's mismatch result.
var ErrMismatchedHashAndPassword = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeInvalidCreds)

// ErrNoEmptyString rejects hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is kept distinct from malformed tokens for logging; both
// surface to clients as ErrInvalidCredentials.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers bad structure and bad signatures alike.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized).
	WithTextCode(TextCodeTokenMalformed)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsNotFound reports whether err is a record-not-found error from the
// repositories.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryNotFound
	}
	return false
}

// IsConflict reports whether err carries a uniqueness or duplicate conflict.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryConflict
	}
	return false
}
