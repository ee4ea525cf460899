package identity

// Role values as stored in users.roles. superadmin is the cross-tenant
// platform operator and never belongs to a tenant.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleFormador   = "formador"
	RoleUser       = "user"
)

// Principal is the authenticated caller as the rest of the app sees it.
// Roles is already normalized, nobody downstream should look at the
// legacy single-role column again.
type Principal struct {
	ID               string
	TenantID         string
	Name             string
	Email            string
	Roles            []string
	Status           string
	IsTenantOwner    bool
	LocationID       string
	FunctionID       string
	FormativeStageID string
	FormadorID       string
}

// NormalizeRoles merges the legacy scalar role column with the roles list.
// Older rows carry only the scalar, newer rows only the list, migrated rows
// both. Output keeps list order, scalar first when unseen, no duplicates.
func NormalizeRoles(legacy string, roles []string) []string {
	out := make([]string, 0, len(roles)+1)
	seen := make(map[string]bool, len(roles)+1)

	if legacy != "" {
		out = append(out, legacy)
		seen[legacy] = true
	}
	for _, r := range roles {
		if r == "" || seen[r] {
			continue
		}
		out = append(out, r)
		seen[r] = true
	}
	return out
}

func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsSuperadmin reports the platform operator role
func (p *Principal) IsSuperadmin() bool {
	return p.HasRole(RoleSuperadmin)
}

// IsAdmin is true for tenant admins and superadmins alike
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin) || p.HasRole(RoleSuperadmin)
}

func (p *Principal) IsFormador() bool {
	return p.HasRole(RoleFormador)
}
