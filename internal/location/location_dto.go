package location

type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required"`
	City        string `json:"city"`
	State       string `json:"state"`
	Description string `json:"description"`
}

type UpdateLocationRequest struct {
	Name        *string `json:"name"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Description *string `json:"description"`
}

type LocationResponse struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}
