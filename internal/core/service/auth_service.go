package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workbridge/freelance-api/internal/core/domain"
	"github.com/workbridge/freelance-api/internal/core/ports"
)

// AuthService implements registration, login and profile access.
type AuthService struct {
	repo      ports.UserRepository
	profiles  ports.SnapshotStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, profiles ports.SnapshotStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, profiles: profiles, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates an account and returns a signed token plus the user.
// The role defaults to customer when not supplied.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" || strings.TrimSpace(input.Name) == "" {
		return "", nil, fmt.Errorf("%w: email, password and name are required", domain.ErrValidation)
	}

	role := domain.Role(input.Role)
	if input.Role == "" {
		role = domain.RoleCustomer
	}
	if !role.Valid() {
		return "", nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login authenticates by email and password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Profile returns the user's profile, merging the identity fields with the
// stored profile snapshot. A user who never edited their profile gets the
// defaults.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := domain.Profile{UserID: user.ID}
	data, err := s.profiles.Load(ctx, ports.ProfileKey(userID))
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &profile); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
	}

	// Identity fields always come from the user record.
	profile.UserID = user.ID
	profile.Name = user.Name
	profile.Email = user.Email
	profile.Role = user.Role
	return &profile, nil
}

// UpdateProfile applies the non-nil patch fields and persists the snapshot.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, patch ports.ProfilePatch) (*domain.Profile, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.Skills != nil {
		profile.Skills = *patch.Skills
	}
	if patch.Specialization != nil {
		profile.Specialization = *patch.Specialization
	}
	if patch.AvatarURL != nil {
		profile.AvatarURL = *patch.AvatarURL
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	if err := s.profiles.Save(ctx, ports.ProfileKey(userID), data); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// ListUsers returns the user directory with credentials stripped.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"name":    user.Name,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
