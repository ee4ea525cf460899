package certificate

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is a stored credential file belonging to one user.
type Certificate struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	Title       string     `gorm:"column:title;type:varchar(255);not null"`
	Description string     `gorm:"column:description;type:text"`
	FilePath    string     `gorm:"column:file_path;type:text;not null"`
	FileName    string     `gorm:"column:file_name;type:varchar(255)"`
	FileSize    int64      `gorm:"column:file_size"`
	MimeType    string     `gorm:"column:mime_type;type:varchar(100)"`
	IssuedAt    *time.Time `gorm:"column:issued_at"`
	CreatedBy   uuid.UUID  `gorm:"column:created_by;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Certificate) TableName() string {
	return "certificates"
}
