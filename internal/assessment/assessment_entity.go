package assessment

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeAnnual          = "annual"
	TypeStageEvaluation = "stage_evaluation"
	TypeFollowUp        = "follow_up"
)

const (
	StatusDraft      = "draft"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusReviewed   = "reviewed"
)

type Assessment struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID       uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	EvaluatorID    uuid.UUID `gorm:"column:evaluator_id;type:uuid;not null"`
	EvaluatorName  string    `gorm:"column:evaluator_name;type:varchar(255)"`
	Type           string    `gorm:"column:type;type:varchar(30);not null"`
	Status         string    `gorm:"column:status;type:varchar(20);default:draft"`
	AssessmentDate time.Time `gorm:"column:assessment_date;not null"`
	Notes          string    `gorm:"column:notes;type:text"`
	// mean of the normalized indicator scores, 0-100
	OverallScore float64   `gorm:"column:overall_score;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Assessment) TableName() string {
	return "psychological_assessments"
}

type Score struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	AssessmentID  uuid.UUID  `gorm:"column:assessment_id;type:uuid;not null;index"`
	IndicatorID   *uuid.UUID `gorm:"column:indicator_id;type:uuid"`
	IndicatorName string     `gorm:"column:indicator_name;type:varchar(255);not null"`
	Value         float64    `gorm:"column:score;not null"`
	MaxValue      float64    `gorm:"column:max_score;not null"`
	Comment       string     `gorm:"column:comment;type:text"`
}

func (Score) TableName() string {
	return "assessment_scores"
}

// StageIndicator is a scored criterion attached to a formative stage.
type StageIndicator struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	StageID     uuid.UUID `gorm:"column:stage_id;type:uuid;not null;index"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Description string    `gorm:"column:description;type:text"`
	MaxScore    float64   `gorm:"column:max_score;default:10"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StageIndicator) TableName() string {
	return "stage_indicators"
}
