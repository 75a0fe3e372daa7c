package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key carrying
// the bearer access token.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the authorization scheme accepted by the gate.
const BearerScheme = "Bearer"

// RefreshTokenBytes is the amount of randomness in an opaque refresh token.
// The wire form is hex, twice as long.
const RefreshTokenBytes = 32

// Role names assigned by the identity store.
const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
	RoleGuest         = "Guest"
)
