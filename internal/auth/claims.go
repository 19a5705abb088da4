package auth

import "github.com/mslima/blog-core-go/internal/account/entity"

// UserClaims derives the authorization claim values for an account: the email
// as the name claim and one role slug per assigned role. When the role
// association was not loaded only the name claim is produced, so callers that
// need role checks must load roles eagerly first.
func UserClaims(u *entity.User) (name string, roles []string) {
	name = u.Email
	if len(u.Roles) == 0 {
		return name, nil
	}
	roles = make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Slug)
	}
	return name, roles
}
