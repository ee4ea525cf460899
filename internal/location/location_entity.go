package location

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	City        string    `gorm:"column:city;type:varchar(255)"`
	State       string    `gorm:"column:state;type:varchar(100)"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Location) TableName() string {
	return "locations"
}
