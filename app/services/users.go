package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

// UserInput is the profile the client sends on first login.
type UserInput struct {
	Name  string `json:"name"  validate:"max=120"`
	Image string `json:"image" validate:"nullable,url"`
}

type UserService struct {
	users  UserStore
	access *AccessService
	now    func() time.Time
}

func NewUserService(users UserStore, access *AccessService) *UserService {
	return &UserService{users: users, access: access, now: time.Now}
}

// Save creates the user with role customer unless one already exists, and
// returns the stored record. An existing record is never modified.
func (s *UserService) Save(ctx context.Context, email string, in UserInput) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, fmt.Errorf("email is required: %w", ErrValidation)
	}
	return s.users.FirstOrCreate(ctx, models.User{
		Email:     email,
		Name:      in.Name,
		Image:     in.Image,
		Role:      models.RoleCustomer,
		Timestamp: s.now().UTC(),
	})
}

// Role returns email's role, "" when the user is unknown.
func (s *UserService) Role(ctx context.Context, email string) (string, error) {
	return s.access.ResolveRole(ctx, email)
}

// RequestSeller records a seller request for email. A second request
// while one is pending is a conflict.
func (s *UserService) RequestSeller(ctx context.Context, caller session.Session, email string) error {
	if err := s.access.SelfOrAdmin(ctx, caller, email); err != nil {
		return err
	}

	changed, err := s.users.MarkRequested(ctx, email)
	if err != nil {
		return err
	}
	if changed {
		return nil
	}

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		return notFound(err, "user %s", email)
	}
	return fmt.Errorf("seller request for %s already pending: %w", email, ErrConflict)
}

// AllExcept lists every user but email.
func (s *UserService) AllExcept(ctx context.Context, email string) ([]models.User, error) {
	return s.users.AllExcept(ctx, email)
}

// SetRole applies an admin decision: {role, status: Verified}.
func (s *UserService) SetRole(ctx context.Context, email, role string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("unknown role %q: %w", role, ErrValidation)
	}
	ok, err := s.users.SetRole(ctx, email, role)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return nil
}
