package participation

import (
	"time"

	"github.com/google/uuid"
)

// Participation ties a user to one run of a formative stage. Rows are
// never reused across cycles, history lives here.
type Participation struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID        uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_participation_user_cycle"`
	CycleID         uuid.UUID  `gorm:"column:cycle_id;type:uuid;not null;uniqueIndex:idx_participation_user_cycle"`
	Status          string     `gorm:"column:status;type:varchar(20);default:enrolled"`
	EnrollmentDate  time.Time  `gorm:"column:enrollment_date;autoCreateTime"`
	Notes           string     `gorm:"column:notes;type:text"`
	EvaluationNotes string     `gorm:"column:evaluation_notes;type:text"`
	ApprovedBy      *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedByName  string     `gorm:"column:approved_by_name;type:varchar(255)"`
	CompletionDate  *time.Time `gorm:"column:completion_date"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Participation) TableName() string {
	return "stage_participations"
}
