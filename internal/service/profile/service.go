package profile

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound = errors.New("profile not found")
)

// DefaultRole is assigned to profiles created without an explicit role.
const DefaultRole = "patient"

// Profile represents the stored patient document.
type Profile struct {
	ID           string
	DisplayName  string
	Email        string
	Phone        string
	Age          string
	DateOfBirth  string
	Address      string
	Gender       string
	PhotoURL     string
	Role         string
	AuthProvider string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLogin    time.Time
}

// UpsertParams carries a partial profile update. Nil fields are left
// untouched; UpdatedAt is always stamped.
type UpsertParams struct {
	DisplayName  *string
	Email        *string
	Phone        *string
	Age          *string
	DateOfBirth  *string
	Address      *string
	Gender       *string
	PhotoURL     *string
	Role         *string
	AuthProvider *string
}

// Service defines profile operations.
//
// Upsert is create-on-first-write: a missing document is never an error.
// There is no conflict resolution; last write wins. Implementations must
// normalize email to lowercase and trim whitespace from email and phone.
type Service interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, userID string, params UpsertParams) (*Profile, error)
	// TouchLastLogin stamps the last_login field, creating the document
	// if needed.
	TouchLastLogin(ctx context.Context, userID string) error
}
