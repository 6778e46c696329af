package types

import "time"

// Account roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Account is a user account owned by the persistence layer. The separate
// server-side auth service keeps its own store and is reconciled by email;
// the two are never merged.
type Account struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"passwordHash"`
	Role                string     `json:"role"`
	SignInCount         int64      `json:"signInCount"`
	LastSignInAt        *time.Time `json:"lastSignInAt,omitempty"`
	LastSignInIP        string     `json:"lastSignInIp,omitempty"`
	Verified            bool       `json:"verified"`
	VerificationToken   string     `json:"verificationToken,omitempty"`
	VerificationExpires *time.Time `json:"verificationExpires,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
