package journey

import (
	"time"

	"github.com/google/uuid"
)

// Record is one hop in a user's formative path. The table is append
// only, corrections are new records, never edits.
type Record struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID      uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	UserID        uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	FromStageID   *uuid.UUID `gorm:"column:from_stage_id;type:uuid"`
	ToStageID     *uuid.UUID `gorm:"column:to_stage_id;type:uuid"`
	ChangedByID   uuid.UUID  `gorm:"column:changed_by_id;type:uuid;not null"`
	ChangedByName string     `gorm:"column:changed_by_name;type:varchar(255)"`
	Notes         string     `gorm:"column:notes;type:text"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Record) TableName() string {
	return "user_journeys"
}
