package ports

import (
	"context"

	"github.com/workbridge/freelance-api/internal/core/domain"
)

// UserRepository defines persistence for marketplace users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	// Role is optional; empty defaults to customer.
	Role string
}

// ProfilePatch holds the optional profile fields of an update. Nil fields
// keep their prior value.
type ProfilePatch struct {
	Bio            *string
	Skills         *[]string
	Specialization *string
	AvatarURL      *string
}

// AuthService implements registration, login and profile access.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*domain.Profile, error)
	// ListUsers returns the sanitized user directory used to pick chat partners.
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
