package domain

import "time"

// Role is the coarse permission class of a user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleFreelancer:
		return true
	}
	return false
}

// Location is where a user is based.
type Location struct {
	Country  string `json:"country" bson:"country"`
	City     string `json:"city" bson:"city"`
	Timezone string `json:"timezone" bson:"timezone"`
}

// User models an authenticated actor in the system.
type User struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Role              Role       `json:"role"`
	Location          Location   `json:"location"`
	PasswordChangedAt *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PasswordChangedAfter reports whether the password was changed strictly
// after issuedAt. Both instants are truncated to whole seconds; a user who
// never changed the password is never stale.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil || u.PasswordChangedAt.IsZero() {
		return false
	}
	return u.PasswordChangedAt.Unix() > issuedAt.Unix()
}

// PublicProfile is the subset of a user exposed to other users.
type PublicProfile struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Public returns the user's public profile.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
