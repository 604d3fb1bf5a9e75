// Package authz holds the ownership-or-admin predicate shared by every
// resource service, replacing per-service role string comparisons.
package authz

import (
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CanModify reports whether the principal may mutate a resource owned
// by ownerID: admins always, everyone else only their own resources.
func CanModify(p *auth.Principal, ownerID string) bool {
	if p == nil {
		return false
	}
	return p.Role == domain.RoleAdmin || p.UserID == ownerID
}

// IsAdmin reports whether the principal holds the admin role.
func IsAdmin(p *auth.Principal) bool {
	return p != nil && p.Role == domain.RoleAdmin
}
