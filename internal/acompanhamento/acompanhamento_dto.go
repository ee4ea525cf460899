package acompanhamento

type CreateAcompanhamentoRequest struct {
	UserID    string `json:"user_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	Content   string `json:"content" binding:"required"`
	Frequency string `json:"frequency"`
}

type UpdateAcompanhamentoRequest struct {
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Location  *string `json:"location"`
	Content   *string `json:"content"`
	Frequency *string `json:"frequency"`
}

type ListFilter struct {
	UserID     string
	FormadorID string
}

type AcompanhamentoResponse struct {
	ID           string `json:"id"`
	TenantID     string `json:"tenant_id"`
	UserID       string `json:"user_id"`
	FormadorID   string `json:"formador_id"`
	FormadorName string `json:"formador_name,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time,omitempty"`
	Location     string `json:"location,omitempty"`
	Content      string `json:"content"`
	Frequency    string `json:"frequency,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// FormandoResponse is a lightweight row for the my-formandos listing.
type FormandoResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	FormativeStageID string `json:"formative_stage_id,omitempty"`
}

type StageCountResponse struct {
	StageID string `json:"stage_id"`
	Count   int64  `json:"count"`
}
