package user

type CreateUserRequest struct {
	Name             string   `json:"name" binding:"required"`
	Email            string   `json:"email" binding:"required,email"`
	CPF              string   `json:"cpf"`
	Password         string   `json:"password" binding:"required,min=8"`
	Roles            []string `json:"roles"`
	LocationID       *string  `json:"location_id"`
	FunctionID       *string  `json:"function_id"`
	FormativeStageID *string  `json:"formative_stage_id"`
	FormadorID       *string  `json:"formador_id"`
	Phone            string   `json:"phone"`
	Birthdate        *string  `json:"birthdate"`
}

// UpdateUserRequest is a partial update, nil leaves the field alone.
type UpdateUserRequest struct {
	Name             *string   `json:"name"`
	Email            *string   `json:"email" binding:"omitempty,email"`
	CPF              *string   `json:"cpf"`
	Password         *string   `json:"password" binding:"omitempty,min=8"`
	Roles            *[]string `json:"roles"`
	Status           *string   `json:"status" binding:"omitempty,oneof=active inactive"`
	LocationID       *string   `json:"location_id"`
	FunctionID       *string   `json:"function_id"`
	FormativeStageID *string   `json:"formative_stage_id"`
	FormadorID       *string   `json:"formador_id"`
	Phone            *string   `json:"phone"`
	Birthdate        *string   `json:"birthdate"`
}

type ListFilter struct {
	Search     string
	Role       string
	Status     string
	LocationID string
	FunctionID string
	StageID    string
	FormadorID string
	Limit      int
	Offset     int
}

type UserResponse struct {
	ID               string   `json:"id"`
	TenantID         string   `json:"tenant_id,omitempty"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	CPF              string   `json:"cpf,omitempty"`
	Roles            []string `json:"roles"`
	Status           string   `json:"status"`
	IsTenantOwner    bool     `json:"is_tenant_owner"`
	LocationID       string   `json:"location_id,omitempty"`
	FunctionID       string   `json:"function_id,omitempty"`
	FormativeStageID string   `json:"formative_stage_id,omitempty"`
	FormadorID       string   `json:"formador_id,omitempty"`
	PhotoPath        string   `json:"photo_path,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Birthdate        string   `json:"birthdate,omitempty"`
	CreatedAt        string   `json:"created_at"`
}
