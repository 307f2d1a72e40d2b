package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/rbac"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

// AccessService resolves roles from the Users collection. It is the
// rbac.Resolver behind every role-gated route.
type AccessService struct {
	users UserStore
}

func NewAccessService(users UserStore) *AccessService {
	return &AccessService{users: users}
}

var _ rbac.Resolver = (*AccessService)(nil)

// ResolveRole returns the stored role, or "" for an unknown user.
func (a *AccessService) ResolveRole(ctx context.Context, email string) (string, error) {
	u, err := a.users.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// IsAdmin reports whether the caller currently holds the admin role.
func (a *AccessService) IsAdmin(ctx context.Context, s session.Session) bool {
	return rbac.HasRole(ctx, a, s.Email, models.RoleAdmin)
}

// SelfOrAdmin allows the caller to act on email's data only when it is
// their own, or when they are an admin.
func (a *AccessService) SelfOrAdmin(ctx context.Context, s session.Session, email string) error {
	if s.Email != "" && s.Email == email {
		return nil
	}
	if a.IsAdmin(ctx, s) {
		return nil
	}
	return fmt.Errorf("%s acting for %s: %w", s.Email, email, ErrUnauthorized)
}
