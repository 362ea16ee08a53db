// Package common defines shared constants and sentinel errors used across
// the server layers of BailBridge. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound       = errors.New("not found")
	ErrDirectoryFailure = errors.New("directory failure")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Credential hashing errors.
	ErrHashingFailure  = errors.New("hashing failure")
	ErrMalformedDigest = errors.New("malformed digest")

	// Token errors. Everything except ErrIssuanceFailure is an untrusted-input
	// rejection and maps to an unauthenticated response.
	ErrIssuanceFailure  = errors.New("token issuance failure")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrMalformedToken   = errors.New("malformed token")

	// Registration errors.
	ErrDuplicateIdentity = errors.New("identity already exists")
	ErrInvalidRole       = errors.New("invalid role")

	// Login errors. Both reasons surface to clients as ErrAuthenticationFailed.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrIdentityNotFound     = errors.New("identity not found")
	ErrInvalidCredential    = errors.New("invalid credential")

	// Authorization errors.
	ErrForbidden        = errors.New("forbidden")
	ErrUnknownOperation = errors.New("unknown operation")
)

// AuthError is returned by login when the caller could not be authenticated.
// Its message never varies with the reason; the reason is reachable only
// through errors.Is / errors.Unwrap for logging.
type AuthError struct {
	Reason error
}

// NewAuthError wraps reason into an AuthError.
func NewAuthError(reason error) *AuthError {
	return &AuthError{Reason: reason}
}

func (e *AuthError) Error() string {
	return ErrAuthenticationFailed.Error()
}

// Is reports a match against ErrAuthenticationFailed.
func (e *AuthError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

func (e *AuthError) Unwrap() error {
	return e.Reason
}

// IsTokenRejection reports whether err is one of the token parse failures.
func IsTokenRejection(err error) bool {
	return errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrMalformedToken)
}
