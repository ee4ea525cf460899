package tenant

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

type Tenant struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"`
	Slug         string    `gorm:"column:slug;type:varchar(100);not null;uniqueIndex"`
	Status       string    `gorm:"column:status;type:varchar(20);default:active"`
	Plan         string    `gorm:"column:plan;type:varchar(50);default:basic"`
	MaxUsers     *int      `gorm:"column:max_users"`
	ContactEmail string    `gorm:"column:contact_email;type:varchar(255)"`
	ContactPhone string    `gorm:"column:contact_phone;type:varchar(50)"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Tenant) TableName() string {
	return "tenants"
}
