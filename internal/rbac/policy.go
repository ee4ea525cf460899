package rbac

// Action names used in policies and route registrations.
const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
)

// superadmin ⊃ admin ⊃ formador ⊃ user
var roleHierarchy = [][2]string{
	{"superadmin", "admin"},
	{"admin", "formador"},
	{"formador", "user"},
}

var defaultPolicies = [][3]string{
	// every authenticated user
	{"user", "documents", ActionRead},
	{"user", "videos", ActionRead},
	{"user", "subcategories", ActionRead},
	{"user", "stages", ActionRead},
	{"user", "cycles", ActionRead},
	{"user", "locations", ActionRead},
	{"user", "functions", ActionRead},
	{"user", "certificates", ActionRead},
	{"user", "certificates", ActionWrite},
	{"user", "participations", ActionRead},
	{"user", "journeys", ActionRead},
	{"user", "acompanhamentos", ActionRead},
	{"user", "assessments", ActionRead},
	{"user", "profile", ActionWrite},

	// formadores additionally follow their formandos and publish content
	{"formador", "users", ActionRead},
	{"formador", "documents", ActionWrite},
	{"formador", "videos", ActionWrite},
	{"formador", "participations", ActionRead},
	{"formador", "journeys", ActionRead},
	{"formador", "acompanhamentos", ActionRead},
	{"formador", "acompanhamentos", ActionWrite},
	{"formador", "assessments", ActionRead},
	{"formador", "assessments", ActionWrite},

	// tenant administration
	{"admin", "users", ActionWrite},
	{"admin", "users", ActionDelete},
	{"admin", "documents", ActionDelete},
	{"admin", "videos", ActionDelete},
	{"admin", "subcategories", ActionWrite},
	{"admin", "subcategories", ActionDelete},
	{"admin", "stages", ActionWrite},
	{"admin", "stages", ActionDelete},
	{"admin", "cycles", ActionWrite},
	{"admin", "cycles", ActionDelete},
	{"admin", "locations", ActionWrite},
	{"admin", "locations", ActionDelete},
	{"admin", "functions", ActionWrite},
	{"admin", "functions", ActionDelete},
	{"admin", "participations", ActionWrite},
	{"admin", "participations", ActionDelete},
	{"admin", "journeys", ActionWrite},
	{"admin", "journeys", ActionDelete},
	{"admin", "acompanhamentos", ActionDelete},
	{"admin", "assessments", ActionDelete},
	{"admin", "certificates", ActionDelete},
	{"admin", "audit", ActionRead},
	{"admin", "stats", ActionRead},

	// platform operator
	{"superadmin", "tenants", ActionRead},
	{"superadmin", "tenants", ActionWrite},
	{"superadmin", "tenants", ActionDelete},
}
