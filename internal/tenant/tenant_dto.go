package tenant

type CreateTenantRequest struct {
	Name          string `json:"name" binding:"required"`
	Slug          string `json:"slug" binding:"required"`
	Plan          string `json:"plan"`
	MaxUsers      *int   `json:"max_users"`
	ContactEmail  string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone  string `json:"contact_phone"`
	OwnerName     string `json:"owner_name" binding:"required"`
	OwnerEmail    string `json:"owner_email" binding:"required,email"`
	OwnerPassword string `json:"owner_password" binding:"required,min=8"`
}

type UpdateTenantRequest struct {
	Name         *string `json:"name"`
	Status       *string `json:"status" binding:"omitempty,oneof=active inactive suspended"`
	Plan         *string `json:"plan"`
	MaxUsers     *int    `json:"max_users"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone *string `json:"contact_phone"`
}

type TenantResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Status       string `json:"status"`
	Plan         string `json:"plan"`
	MaxUsers     *int   `json:"max_users,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	UserCount    int64  `json:"user_count"`
	CreatedAt    string `json:"created_at"`
}

// PublicTenantResponse is the limited projection exposed without auth,
// used by the login screen to resolve a slug.
type PublicTenantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TenantStatsResponse struct {
	Users     int64   `json:"users"`
	Documents int64   `json:"documents"`
	Videos    int64   `json:"videos"`
	StorageGB float64 `json:"storage_gb"`
}
