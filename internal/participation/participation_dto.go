package participation

type EnrollRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	CycleID string `json:"cycle_id" binding:"required,uuid"`
	Notes   string `json:"notes"`
}

type TransitionRequest struct {
	Notes           string `json:"notes"`
	EvaluationNotes string `json:"evaluation_notes"`
}

// UpdateRequest is the generic admin edit, nil fields stay untouched.
type UpdateRequest struct {
	Status          *string `json:"status" binding:"omitempty,oneof=enrolled in_progress approved reproved withdrawn transferred"`
	Notes           *string `json:"notes"`
	EvaluationNotes *string `json:"evaluation_notes"`
	CompletionDate  *string `json:"completion_date"`
}

type ListFilter struct {
	CycleID string
	UserID  string
	Status  string
	Limit   int
	Offset  int
}

type ParticipationResponse struct {
	ID              string `json:"id"`
	TenantID        string `json:"tenant_id"`
	UserID          string `json:"user_id"`
	CycleID         string `json:"cycle_id"`
	Status          string `json:"status"`
	EnrollmentDate  string `json:"enrollment_date"`
	Notes           string `json:"notes,omitempty"`
	EvaluationNotes string `json:"evaluation_notes,omitempty"`
	ApprovedBy      string `json:"approved_by,omitempty"`
	ApprovedByName  string `json:"approved_by_name,omitempty"`
	CompletionDate  string `json:"completion_date,omitempty"`
	CreatedAt       string `json:"created_at"`
}

type ParticipationStatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// JourneyEntryResponse is a participation joined with its cycle, stage
// and user rows for the full-journey view.
type JourneyEntryResponse struct {
	ID              string `json:"id"`
	CycleID         string `json:"cycle_id"`
	CycleName       string `json:"cycle_name"`
	StageID         string `json:"stage_id,omitempty"`
	StageName       string `json:"stage_name,omitempty"`
	StageOrder      int    `json:"stage_order"`
	Status          string `json:"status"`
	EnrollmentDate  string `json:"enrollment_date"`
	Notes           string `json:"notes,omitempty"`
	EvaluationNotes string `json:"evaluation_notes,omitempty"`
	ApprovedByName  string `json:"approved_by_name,omitempty"`
	CompletionDate  string `json:"completion_date,omitempty"`
}

type FullJourneyResponse struct {
	UserID                 string                 `json:"user_id"`
	UserName               string                 `json:"user_name"`
	UserEmail              string                 `json:"user_email"`
	CurrentStage           string                 `json:"current_stage,omitempty"`
	CurrentCycle           string                 `json:"current_cycle,omitempty"`
	Participations         []JourneyEntryResponse `json:"participations"`
	TotalStagesCompleted   int                    `json:"total_stages_completed"`
	JourneyProgressPercent int                    `json:"journey_progress_percent"`
}
