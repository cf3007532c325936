// Package access holds the authorization checks that sit between a verified
// session and a use case. Both checks are pure: they read only their
// arguments and never touch a store.
package access

import "github.com/gigboard/marketplace-api/internal/core/domain"

// Authorize allows user when its role is one of allowed. It must only be
// called with an identity returned by the session verifier.
func Authorize(user *domain.User, allowed ...domain.Role) error {
	if user == nil {
		return domain.ErrNoToken
	}
	for _, r := range allowed {
		if user.Role == r {
			return nil
		}
	}
	return domain.ErrRoleNotPermitted
}

// AssertOwner allows the action when actorID is the resource's controlling
// party. The comparison is literal; no role bypasses it.
func AssertOwner(ownerID, actorID string) error {
	if ownerID == "" || ownerID != actorID {
		return domain.ErrNotOwner
	}
	return nil
}
