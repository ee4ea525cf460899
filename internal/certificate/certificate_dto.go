package certificate

type UpdateCertificateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IssuedAt    *string `json:"issued_at"`
}

type ListFilter struct {
	UserID string
}

type FileMeta struct {
	Path     string
	Name     string
	Size     int64
	MimeType string
}

type CertificateResponse struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	MimeType    string `json:"mime_type,omitempty"`
	FilePath    string `json:"file_path"`
	IssuedAt    string `json:"issued_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}
