package models

// Well-known role names. Roles are arbitrary rows in the store, but the
// authorization rules only distinguish these three tiers.
const (
	RoleNameAdmin          = "Admin"
	RoleNameProjectManager = "ProjectManager"
	RoleNameEmployee       = "Employee"
)

// AccessTier is the caller's privilege level, resolved once from the
// token's role claim when the request is authenticated. Custom roles
// resolve to TierUnknown: they pass plain authentication but never match
// an allow-list and are not subject to ownership narrowing.
type AccessTier int

const (
	TierUnknown AccessTier = iota
	TierEmployee
	TierProjectManager
	TierAdmin
)

func TierFromRoleName(name string) AccessTier {
	switch name {
	case RoleNameAdmin:
		return TierAdmin
	case RoleNameProjectManager:
		return TierProjectManager
	case RoleNameEmployee:
		return TierEmployee
	default:
		return TierUnknown
	}
}

func (t AccessTier) String() string {
	switch t {
	case TierAdmin:
		return RoleNameAdmin
	case TierProjectManager:
		return RoleNameProjectManager
	case TierEmployee:
		return RoleNameEmployee
	default:
		return "Unknown"
	}
}
