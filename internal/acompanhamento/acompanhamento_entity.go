package acompanhamento

import (
	"time"

	"github.com/google/uuid"
)

// Acompanhamento is one logged mentoring session between a formador and
// a formando.
type Acompanhamento struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID     uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	FormadorID   uuid.UUID `gorm:"column:formador_id;type:uuid;not null;index"`
	FormadorName string    `gorm:"column:formador_name;type:varchar(255)"`
	Date         time.Time `gorm:"column:date;not null"`
	Time         string    `gorm:"column:time;type:varchar(5)"`
	Location     string    `gorm:"column:location;type:varchar(255)"`
	Content      string    `gorm:"column:content;type:text;not null"`
	Frequency    string    `gorm:"column:frequency;type:varchar(50)"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Acompanhamento) TableName() string {
	return "acompanhamentos"
}
