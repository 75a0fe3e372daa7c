package models

import "time"

// RevokedAccessToken blacklists an access token until its own expiry.
// ExpiresAt always equals the token's exp claim; past it the row is prunable.
type RevokedAccessToken struct {
	Token     string
	UserID    string
	RevokedAt time.Time
	ExpiresAt time.Time
	Reason    *string
}
