// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// User is a registered identity. It is created on registration and never mutated.
type User struct {
	ID           uint      // Store-assigned identifier.
	Email        string    // Unique login identifier, stored normalized.
	PasswordHash string    // Opaque one-way hash; never the plaintext.
	CreatedAt    time.Time // Timestamp of registration.
	UpdatedAt    time.Time
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address so
// uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
