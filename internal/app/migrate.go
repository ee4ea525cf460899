package app

import (
	"go-formacao/internal/acompanhamento"
	"go-formacao/internal/assessment"
	"go-formacao/internal/audit"
	"go-formacao/internal/auth"
	"go-formacao/internal/certificate"
	"go-formacao/internal/cycle"
	"go-formacao/internal/document"
	"go-formacao/internal/jobfunction"
	"go-formacao/internal/journey"
	"go-formacao/internal/location"
	"go-formacao/internal/participation"
	"go-formacao/internal/stage"
	"go-formacao/internal/subcategory"
	"go-formacao/internal/tenant"
	"go-formacao/internal/user"
	"go-formacao/internal/video"

	"gorm.io/gorm"
)

// migrate keeps the schema in sync with the entities. Ordering matters
// only for readability, gorm resolves references lazily.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&tenant.Tenant{},
		&user.User{},
		&location.Location{},
		&jobfunction.JobFunction{},
		&stage.Stage{},
		&cycle.Cycle{},
		&participation.Participation{},
		&journey.Record{},
		&subcategory.Subcategory{},
		&document.Document{},
		&video.Video{},
		&video.Progress{},
		&video.Comment{},
		&video.Evaluation{},
		&video.Attachment{},
		&certificate.Certificate{},
		&acompanhamento.Acompanhamento{},
		&assessment.Assessment{},
		&assessment.Score{},
		&assessment.StageIndicator{},
		&audit.Log{},
		&auth.PasswordReset{},
	)
}
