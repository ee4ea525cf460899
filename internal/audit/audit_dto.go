package audit

// Entry is what services hand to the Recorder. Tenant is empty for
// superadmin actions.
type Entry struct {
	TenantID     string
	UserID       string
	UserName     string
	Action       string
	ResourceType string
	ResourceID   string
	Details      string
}

type Filter struct {
	TenantID     string // empty means cross-tenant (superadmin view)
	UserID       string
	Action       string
	ResourceType string
	Search       string
	DateFrom     string // YYYY-MM-DD
	DateTo       string
	Limit        int
	Offset       int
}

type LogResponse struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenant_id,omitempty"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	Action       string `json:"action"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id,omitempty"`
	Details      string `json:"details,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type SummaryResponse struct {
	Total          int64            `json:"total"`
	ByAction       map[string]int64 `json:"by_action"`
	ByResourceType map[string]int64 `json:"by_resource_type"`
	TopUsers       []UserCount      `json:"top_users"`
	TotalViews     int64            `json:"total_views"`
	TotalDownloads int64            `json:"total_downloads"`
}

type UserCount struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Count    int64  `json:"count"`
}
