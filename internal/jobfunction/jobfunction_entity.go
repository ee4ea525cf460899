package jobfunction

import (
	"time"

	"github.com/google/uuid"
)

// JobFunction is the role a person holds inside the organization, not
// to be confused with the access roles on the user record.
type JobFunction struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (JobFunction) TableName() string {
	return "job_functions"
}
