package auth

const (
	RoleUser       = "ROLE_USER"
	RoleAdmin      = "ROLE_ADMIN"
	RoleSuperAdmin = "ROLE_SUPER_ADMIN"
)

// AllRoles lists every assignable role, lowest first.
var AllRoles = []string{RoleUser, RoleAdmin, RoleSuperAdmin}

// hierarchy maps a role to the roles it implicitly grants.
var hierarchy = map[string][]string{
	RoleSuperAdmin: {RoleAdmin, RoleUser},
	RoleAdmin:      {RoleUser},
}

// IsValidRole reports whether role is one of AllRoles.
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Reachable expands roles with everything they inherit.
func Reachable(roles []string) map[string]bool {
	out := make(map[string]bool, len(roles)+2)
	for _, r := range roles {
		out[r] = true
		for _, inherited := range hierarchy[r] {
			out[inherited] = true
		}
	}
	return out
}

// Granted reports whether holding roles satisfies want, honouring the
// ROLE_SUPER_ADMIN > ROLE_ADMIN > ROLE_USER hierarchy.
func Granted(roles []string, want string) bool {
	return Reachable(roles)[want]
}

// Normalize returns roles with the implicit ROLE_USER appended and
// duplicates removed, preserving the original order.
func Normalize(roles []string) []string {
	seen := make(map[string]bool, len(roles)+1)
	out := make([]string, 0, len(roles)+1)
	for _, r := range append(append([]string{}, roles...), RoleUser) {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}
