package stage

import (
	"time"

	"github.com/google/uuid"
)

// Stage is one step of the formative path. Order drives both listing
// and the sequential content release mode.
type Stage struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Description string    `gorm:"column:description;type:text"`
	Order       int       `gorm:"column:order;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Stage) TableName() string {
	return "formative_stages"
}
