package stats

type UserStats struct {
	Total    int64            `json:"total"`
	Active   int64            `json:"active"`
	Inactive int64            `json:"inactive"`
	ByRole   map[string]int64 `json:"by_role"`
	ByStage  map[string]int64 `json:"by_stage"`
	NewTotal int64            `json:"new_last_30_days"`
}

type ContentStats struct {
	Documents       int64 `json:"documents"`
	Videos          int64 `json:"videos"`
	Certificates    int64 `json:"certificates"`
	Acompanhamentos int64 `json:"acompanhamentos"`
	Assessments     int64 `json:"assessments"`
}

type OrganizationStats struct {
	Locations            int64 `json:"locations"`
	Functions            int64 `json:"functions"`
	FormativeStages      int64 `json:"formative_stages"`
	OpenCycles           int64 `json:"open_cycles"`
	ActiveParticipations int64 `json:"active_participations"`
}

type ActivityEntry struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	Action       string `json:"action"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id,omitempty"`
	Details      string `json:"details,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type DashboardResponse struct {
	Users          UserStats         `json:"users"`
	Content        ContentStats      `json:"content"`
	Organization   OrganizationStats `json:"organization"`
	RecentActivity []ActivityEntry   `json:"recent_activity"`
	CachedAt       string            `json:"cached_at"`
}
