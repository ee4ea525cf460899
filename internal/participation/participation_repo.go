package participation

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JourneyRow is one participation joined with its user, cycle and stage.
type JourneyRow struct {
	ID              uuid.UUID
	CycleID         uuid.UUID
	Status          string
	EnrollmentDate  time.Time
	Notes           string
	EvaluationNotes string
	ApprovedByName  string
	CompletionDate  *time.Time
	UserName        string
	UserEmail       string
	CycleName       string
	StageID         string
	StageName       string
	StageOrder      int
}

type UserHeader struct {
	FullName string
	Email    string
}

//go:generate mockgen -source=participation_repo.go -destination=mock/participation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pt *Participation) error
	FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Participation, int64, error)
	FindByID(ctx context.Context, tenantID, id string) (*Participation, error)
	FindByUser(ctx context.Context, tenantID, userID string) ([]Participation, error)
	FindJourney(ctx context.Context, tenantID, userID string) ([]JourneyRow, error)
	UserHeader(ctx context.Context, tenantID, userID string) (*UserHeader, error)
	CountStages(ctx context.Context, tenantID string) (int64, error)
	Update(ctx context.Context, pt *Participation) error
	Delete(ctx context.Context, tenantID, id string) error
	ExistsForUserAndCycle(ctx context.Context, tenantID, userID, cycleID string) (bool, error)
	UserBelongsToTenant(ctx context.Context, tenantID, userID string) (bool, error)
	CycleIsOpen(ctx context.Context, tenantID, cycleID string) (bool, error)
	CycleCapacity(ctx context.Context, tenantID, cycleID string) (*int, error)
	CountForCycle(ctx context.Context, tenantID, cycleID string) (int64, error)
	CountByStatus(ctx context.Context, tenantID string) (map[string]int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, pt *Participation) error {
	return r.db.WithContext(ctx).Create(pt).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Participation, int64, error) {
	q := r.db.WithContext(ctx).Model(&Participation{})
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if f.CycleID != "" {
		q = q.Where("cycle_id = ?", f.CycleID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var participations []Participation
	err := q.Order("enrollment_date DESC").Find(&participations).Error
	return participations, total, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Participation, error) {
	var pt Participation
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.First(&pt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *repository) FindByUser(ctx context.Context, tenantID, userID string) ([]Participation, error) {
	var participations []Participation
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	err := q.Where("user_id = ?", userID).
		Order("enrollment_date ASC").
		Find(&participations).Error
	return participations, err
}

func (r *repository) FindJourney(ctx context.Context, tenantID, userID string) ([]JourneyRow, error) {
	q := r.db.WithContext(ctx).
		Table("stage_participations").
		Select(`stage_participations.id,
			stage_participations.cycle_id,
			stage_participations.status,
			stage_participations.enrollment_date,
			stage_participations.notes,
			stage_participations.evaluation_notes,
			stage_participations.approved_by_name,
			stage_participations.completion_date,
			users.full_name AS user_name,
			users.email AS user_email,
			stage_cycles.name AS cycle_name,
			formative_stages.id::text AS stage_id,
			formative_stages.name AS stage_name,
			COALESCE(formative_stages."order", 0) AS stage_order`).
		Joins("JOIN users ON users.id = stage_participations.user_id").
		Joins("JOIN stage_cycles ON stage_cycles.id = stage_participations.cycle_id").
		Joins("LEFT JOIN formative_stages ON formative_stages.id = stage_cycles.stage_id").
		Where("stage_participations.user_id = ?", userID)
	if tenantID != "" {
		q = q.Where("stage_participations.tenant_id = ?", tenantID)
	}

	var rows []JourneyRow
	err := q.Order("stage_order ASC, enrollment_date ASC").Scan(&rows).Error
	return rows, err
}

func (r *repository) UserHeader(ctx context.Context, tenantID, userID string) (*UserHeader, error) {
	var row UserHeader
	q := r.db.WithContext(ctx).
		Table("users").
		Select("full_name, email").
		Where("id = ?", userID)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) CountStages(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Table("formative_stages")
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, pt *Participation) error {
	return r.db.WithContext(ctx).Save(pt).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	return q.Delete(&Participation{}, "id = ?", id).Error
}

func (r *repository) ExistsForUserAndCycle(ctx context.Context, tenantID, userID, cycleID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Participation{}).
		Where("tenant_id = ?", tenantID).
		Where("user_id = ?", userID).
		Where("cycle_id = ?", cycleID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UserBelongsToTenant(ctx context.Context, tenantID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Where("tenant_id = ?", tenantID).
		Where("status = ?", "active").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CycleIsOpen(ctx context.Context, tenantID, cycleID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("stage_cycles").
		Where("id = ?", cycleID).
		Where("tenant_id = ?", tenantID).
		Where("status = ?", "active").
		Count(&count).Error
	return count > 0, err
}

// CycleCapacity reads max_participants off the cycle row, nil means
// unlimited.
func (r *repository) CycleCapacity(ctx context.Context, tenantID, cycleID string) (*int, error) {
	var row struct {
		MaxParticipants *int
	}
	err := r.db.WithContext(ctx).
		Table("stage_cycles").
		Select("max_participants").
		Where("id = ?", cycleID).
		Where("tenant_id = ?", tenantID).
		Scan(&row).Error
	return row.MaxParticipants, err
}

func (r *repository) CountForCycle(ctx context.Context, tenantID, cycleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Participation{}).
		Where("tenant_id = ?", tenantID).
		Where("cycle_id = ?", cycleID).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByStatus(ctx context.Context, tenantID string) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	q := r.db.WithContext(ctx).
		Model(&Participation{}).
		Select("status, COUNT(*) as count").
		Group("status")
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}
