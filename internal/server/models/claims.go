package models

import "time"

// AccessClaims is the decoded content of an access token. It is never
// persisted.
type AccessClaims struct {
	ID        string
	Subject   string
	Email     string
	Roles     []string
	Issuer    string
	Audience  []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether role is among the claimed roles.
func (c *AccessClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
