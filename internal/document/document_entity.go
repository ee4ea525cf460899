package document

import (
	"time"

	"go-formacao/internal/permission"

	"github.com/google/uuid"
)

type Document struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	Title         string     `gorm:"column:title;type:varchar(255);not null"`
	Description   string     `gorm:"column:description;type:text"`
	SubcategoryID *uuid.UUID `gorm:"column:subcategory_id;type:uuid;index"`
	FilePath      string     `gorm:"column:file_path;type:text"`
	FileName      string     `gorm:"column:file_name;type:varchar(255)"`
	FileSize      int64      `gorm:"column:file_size"`
	MimeType      string     `gorm:"column:mime_type;type:varchar(100)"`
	IsPublic      bool       `gorm:"column:is_public;default:false"`
	Views         int64      `gorm:"column:views;default:0"`
	Downloads     int64      `gorm:"column:downloads;default:0"`
	CreatedBy     uuid.UUID  `gorm:"column:created_by;type:uuid"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	permission.Set `gorm:"embedded"`
}

func (Document) TableName() string {
	return "documents"
}
