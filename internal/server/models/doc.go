// Package models defines the server-side data models: persisted users and
// tokens, and the in-memory access-token claims.
package models
