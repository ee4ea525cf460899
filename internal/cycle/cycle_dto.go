package cycle

type CreateCycleRequest struct {
	StageID         string `json:"stage_id" binding:"required,uuid"`
	Name            string `json:"name" binding:"required"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	MaxParticipants *int   `json:"max_participants" binding:"omitempty,min=1"`
}

type UpdateCycleRequest struct {
	Name            *string `json:"name"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	MaxParticipants *int    `json:"max_participants" binding:"omitempty,min=1"`
	Status          *string `json:"status" binding:"omitempty,oneof=active closed"`
}

type CycleResponse struct {
	ID               string `json:"id"`
	TenantID         string `json:"tenant_id"`
	StageID          string `json:"stage_id"`
	Name             string `json:"name"`
	StartDate        string `json:"start_date,omitempty"`
	EndDate          string `json:"end_date,omitempty"`
	MaxParticipants  *int   `json:"max_participants,omitempty"`
	Status           string `json:"status"`
	ParticipantCount int64  `json:"participant_count"`
	CreatedAt        string `json:"created_at"`
}
