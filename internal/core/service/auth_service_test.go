package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/workbridge/freelance-api/internal/core/domain"
	"github.com/workbridge/freelance-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var users []*domain.User
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func registerInput(email string) ports.RegisterInput {
	return ports.RegisterInput{
		Email:    email,
		Password: "pass123",
		Name:     "Alice",
		Role:     "customer",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newMemStore(), "secret", time.Hour)

	token, user, err := svc.Register(context.Background(), registerInput("alice@example.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_DefaultsToCustomer(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newMemStore(), "secret", time.Hour)

	input := registerInput("bob@example.com")
	input.Role = ""
	_, user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected customer default, got %s", user.Role)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newMemStore(), "secret", time.Hour)
	ctx := context.Background()

	input := registerInput("")
	if _, _, err := svc.Register(ctx, input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing email, got %v", err)
	}

	input = registerInput("carol@example.com")
	input.Role = "admin"
	if _, _, err := svc.Register(ctx, input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newMemStore(), "secret", time.Hour)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, registerInput("bob@example.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(ctx, registerInput("bob@example.com")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newMemStore(), "secret", time.Hour)
	ctx := context.Background()

	input := registerInput("carol@example.com")
	input.Role = "executor"
	if _, _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(ctx, "Carol@Example.com", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != string(domain.RoleExecutor) {
		t.Fatalf("expected executor role claim, got %v", claims["role"])
	}
	if claims["user_id"] != user.ID {
		t.Fatalf("expected user_id claim %s, got %v", user.ID, claims["user_id"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newMemStore(), "secret", time.Hour)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, registerInput("dave@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Login(ctx, "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newMemStore(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Profile_MergesIdentity(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newMemStore(), "secret", time.Hour)
	ctx := context.Background()

	_, user, err := svc.Register(ctx, registerInput("alice@example.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Before any edit the profile carries the identity defaults.
	profile, err := svc.Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Name != "Alice" || profile.Email != "alice@example.com" || profile.Role != domain.RoleCustomer {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	bio := "Brand designer"
	skills := []string{"figma", "illustrator"}
	updated, err := svc.UpdateProfile(ctx, user.ID, ports.ProfilePatch{Bio: &bio, Skills: &skills})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Bio != bio || len(updated.Skills) != 2 {
		t.Fatalf("patch not applied: %+v", updated)
	}

	// A later partial patch keeps the untouched fields.
	specialization := "branding"
	updated, err = svc.UpdateProfile(ctx, user.ID, ports.ProfilePatch{Specialization: &specialization})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Bio != bio {
		t.Fatalf("bio lost by partial patch: %+v", updated)
	}
	if updated.Specialization != specialization {
		t.Fatalf("specialization not applied: %+v", updated)
	}
}

func TestAuthService_ListUsers_StripsCredentials(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newMemStore(), "secret", time.Hour)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, registerInput("alice@example.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].PasswordHash != "" {
		t.Fatalf("expected password hash stripped")
	}
}
