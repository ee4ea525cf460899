package jobfunction

type CreateFunctionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateFunctionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type FunctionResponse struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}
