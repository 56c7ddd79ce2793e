package model

import "time"

// Role names stored in user.role and carried in the JWT "role" claim.
const (
	RoleStudent = "STUDENT" // regular campus user
	RoleManager = "MANAGER" // store manager, may edit hours and notices of their store
	RoleStaff   = "STAFF"   // school staff account
)

// User is an application account. StdID is the campus student number
// used as the login identifier alongside email.
type User struct {
	UID          uint64    // user.uid
	StdID        string    // user.std_id
	Name         string    // user.name
	Email        string    // user.email
	PasswordHash string    // user.password
	SchoolID     uint64    // user.school_id
	Role         string    // user.role
	SignURL      *string   // user.sign_url (nullable)
	CreatedAt    time.Time // user.created_at
}

// School is a campus a user belongs to and a store is located at.
type School struct {
	ID     uint64  // school.id
	Name   string  // school.name
	Campus *string // school.campus (nullable)
}

// RefreshToken is one issued refresh credential. Only the SHA-256 hash
// of the raw token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
