package audit

import (
	"time"

	"github.com/google/uuid"
)

// Log rows are append-only. Nothing in the application updates or
// deletes them.
type Log struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID     *uuid.UUID `gorm:"column:tenant_id;type:uuid;index"`
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	UserName     string     `gorm:"column:user_name;type:varchar(255)"`
	Action       string     `gorm:"column:action;type:varchar(100);not null;index"`
	ResourceType string     `gorm:"column:resource_type;type:varchar(100);not null;index"`
	ResourceID   string     `gorm:"column:resource_id;type:varchar(64)"`
	Details      string     `gorm:"column:details;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Log) TableName() string {
	return "audit_logs"
}
