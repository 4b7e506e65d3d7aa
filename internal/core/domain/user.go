package domain

import "time"

// Role is the closed set of marketplace actor roles.
type Role string

const (
	// RoleCustomer posts projects and approves responses.
	RoleCustomer Role = "customer"
	// RoleExecutor submits responses (bids) and maintains a portfolio.
	RoleExecutor Role = "executor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleExecutor
}

// User models an authenticated actor in the marketplace.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the user-editable extension of a User, persisted as a single
// snapshot per user under the profile_<userId> key.
type Profile struct {
	UserID            string   `json:"user_id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Role              Role     `json:"role"`
	Bio               string   `json:"bio,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	Specialization    string   `json:"specialization,omitempty"`
	AvatarURL         string   `json:"avatar_url,omitempty"`
	Rating            float64  `json:"rating"`
	CompletedProjects int      `json:"completed_projects"`
}
