package journey

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=journey_repo.go -destination=mock/journey_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Record, int64, error)
	FindByID(ctx context.Context, tenantID, id string) (*Record, error)
	FindByUser(ctx context.Context, tenantID, userID string) ([]Record, error)
	Delete(ctx context.Context, tenantID, id string) error
	UserStage(ctx context.Context, tenantID, userID string) (*uuid.UUID, error)
	SetUserStage(ctx context.Context, tenantID, userID string, stageID *uuid.UUID) error
	CountByStage(ctx context.Context, tenantID string) ([]StageCountResponse, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Record, int64, error) {
	q := r.db.WithContext(ctx).Model(&Record{})
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.StageID != "" {
		q = q.Where("to_stage_id = ?", f.StageID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var records []Record
	err := q.Order("created_at DESC").Find(&records).Error
	return records, total, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Record, error) {
	var rec Record
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindByUser(ctx context.Context, tenantID, userID string) ([]Record, error) {
	var records []Record
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	err := q.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	return q.Delete(&Record{}, "id = ?", id).Error
}

// UserStage reads the current stage pointer off the user row.
func (r *repository) UserStage(ctx context.Context, tenantID, userID string) (*uuid.UUID, error) {
	var row struct {
		FormativeStageID *uuid.UUID
	}
	err := r.db.WithContext(ctx).
		Table("users").
		Select("formative_stage_id").
		Where("id = ?", userID).
		Where("tenant_id = ?", tenantID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return row.FormativeStageID, nil
}

// SetUserStage moves the pointer only; the journey record itself is
// what keeps the history.
func (r *repository) SetUserStage(ctx context.Context, tenantID, userID string, stageID *uuid.UUID) error {
	return r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Where("tenant_id = ?", tenantID).
		UpdateColumn("formative_stage_id", stageID).Error
}

func (r *repository) CountByStage(ctx context.Context, tenantID string) ([]StageCountResponse, error) {
	var rows []StageCountResponse
	q := r.db.WithContext(ctx).
		Model(&Record{}).
		Select("to_stage_id::text as stage_id, COUNT(*) as count").
		Where("to_stage_id IS NOT NULL").
		Group("to_stage_id")
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	err := q.Scan(&rows).Error
	return rows, err
}
