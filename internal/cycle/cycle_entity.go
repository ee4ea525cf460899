package cycle

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Cycle is a dated run of a formative stage that people enroll into.
type Cycle struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	StageID   uuid.UUID  `gorm:"column:stage_id;type:uuid;not null;index"`
	Name      string     `gorm:"column:name;type:varchar(255);not null"`
	StartDate *time.Time `gorm:"column:start_date"`
	EndDate   *time.Time `gorm:"column:end_date"`
	// nil means unlimited enrollment
	MaxParticipants *int   `gorm:"column:max_participants"`
	Status          string `gorm:"column:status;type:varchar(20);default:active"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Cycle) TableName() string {
	return "stage_cycles"
}
