package journey

type CreateJourneyRequest struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	ToStageID string `json:"to_stage_id" binding:"omitempty,uuid"`
	Notes     string `json:"notes"`
}

type ListFilter struct {
	UserID  string
	StageID string
	Limit   int
	Offset  int
}

type JourneyResponse struct {
	ID            string `json:"id"`
	TenantID      string `json:"tenant_id"`
	UserID        string `json:"user_id"`
	FromStageID   string `json:"from_stage_id,omitempty"`
	ToStageID     string `json:"to_stage_id,omitempty"`
	ChangedByID   string `json:"changed_by_id"`
	ChangedByName string `json:"changed_by_name,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type StageCountResponse struct {
	StageID string `json:"stage_id"`
	Count   int64  `json:"count"`
}
