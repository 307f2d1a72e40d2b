// Package rbac gates authenticated handlers on the caller's stored role.
//
// Roles are resolved per request through a Resolver, so a role change made
// by an admin takes effect on the caller's next request without a new token.
package rbac

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/plantnet/pkg/ctx"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

// Resolver looks up the role of the user identified by email. An unknown
// user resolves to "" with a nil error.
type Resolver interface {
	ResolveRole(c context.Context, email string) (string, error)
}

// HasRole reports whether email currently holds one of roles. Lookup
// failures count as "no".
func HasRole(c context.Context, res Resolver, email string, roles ...string) bool {
	if email == "" {
		return false
	}
	role, err := res.ResolveRole(c, email)
	if err != nil || role == "" {
		return false
	}
	for _, r := range roles {
		if strings.EqualFold(role, r) {
			return true
		}
	}
	return false
}

// Require wraps h so it only runs for callers holding one of roles.
// Everyone else gets a 401 before h is invoked.
//
//	r.Get("/all-users/{email}", "users.index",
//	    sessions.Required(rbac.Require(access, models.RoleAdmin)(users.Index)))
func Require(res Resolver, roles ...string) func(session.Handler) session.Handler {
	return func(h session.Handler) session.Handler {
		return func(c *ctx.Context, s session.Session) {
			if !HasRole(c.Context(), res, s.Email, roles...) {
				c.Log().Warn("rbac: access denied", "email", s.Email, "want", roles)
				c.Unauthorized("unauthorized access")
				return
			}
			h(c, s)
		}
	}
}
