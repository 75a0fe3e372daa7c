// Package common defines shared constants, helpers and sentinel errors used
// across the tokengate server and client. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors. ErrorUnauthorized is the only authentication
	// failure that crosses a transport boundary.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Request-shape errors.
	ErrMissingCredential = errors.New("missing credential")
	ErrMissingField      = errors.New("missing required field")

	// Access token decoding errors.
	ErrMalformedToken           = errors.New("malformed token")
	ErrSignatureInvalid         = errors.New("token signature invalid")
	ErrTokenExpired             = errors.New("token expired")
	ErrIssuerOrAudienceMismatch = errors.New("token issuer or audience mismatch")

	// Token lifecycle errors.
	ErrRevoked             = errors.New("token revoked")
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUnknownSubject      = errors.New("unknown subject")
	ErrNotOwner            = errors.New("refresh token not owned by caller")

	// ErrStorageUnavailable wraps any failure of the backing store. The
	// authentication gate treats it as a rejection.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
