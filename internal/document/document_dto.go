package document

import "go-formacao/internal/permission"

type CreateDocumentRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	SubcategoryID string   `json:"subcategory_id" binding:"omitempty,uuid"`
	IsPublic      bool     `json:"is_public"`
	AllowedUsers  []string `json:"allowed_user_ids"`
	AllowedLocs   []string `json:"allowed_location_ids"`
	AllowedFuncs  []string `json:"allowed_function_ids"`
	AllowedStages []string `json:"allowed_stage_ids"`
}

type UpdateDocumentRequest struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	SubcategoryID *string   `json:"subcategory_id" binding:"omitempty,uuid"`
	IsPublic      *bool     `json:"is_public"`
	AllowedUsers  *[]string `json:"allowed_user_ids"`
	AllowedLocs   *[]string `json:"allowed_location_ids"`
	AllowedFuncs  *[]string `json:"allowed_function_ids"`
	AllowedStages *[]string `json:"allowed_stage_ids"`
}

type ListFilter struct {
	SubcategoryID string
	Search        string
}

type FileMeta struct {
	Path     string
	Name     string
	Size     int64
	MimeType string
}

type DocumentResponse struct {
	ID            string         `json:"id"`
	TenantID      string         `json:"tenant_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	SubcategoryID string         `json:"subcategory_id,omitempty"`
	FileName      string         `json:"file_name,omitempty"`
	FileSize      int64          `json:"file_size"`
	MimeType      string         `json:"mime_type,omitempty"`
	IsPublic      bool           `json:"is_public"`
	Views         int64          `json:"views"`
	Downloads     int64          `json:"downloads"`
	Permissions   permission.Set `json:"permissions"`
	CreatedAt     string         `json:"created_at"`
}
