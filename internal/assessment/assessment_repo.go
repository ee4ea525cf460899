package assessment

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=assessment_repo.go -destination=mock/assessment_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *Assessment, scores []Score) error
	FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Assessment, error)
	FindByID(ctx context.Context, tenantID, id string) (*Assessment, error)
	Update(ctx context.Context, a *Assessment, scores []Score) error
	Delete(ctx context.Context, tenantID, id string) error
	FindScores(ctx context.Context, assessmentID string) ([]Score, error)

	CreateIndicator(ctx context.Context, ind *StageIndicator) error
	FindIndicators(ctx context.Context, tenantID, stageID string) ([]StageIndicator, error)
	FindIndicatorByID(ctx context.Context, tenantID, id string) (*StageIndicator, error)
	UpdateIndicator(ctx context.Context, ind *StageIndicator) error
	DeleteIndicator(ctx context.Context, tenantID, id string) error

	UserName(ctx context.Context, userID string) (string, error)
	ReadinessRows(ctx context.Context, tenantID, stageID string) ([]readinessRow, error)
}

type readinessRow struct {
	UserID         string
	UserName       string
	OverallScore   *float64
	AssessmentDate *time.Time
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create stores the assessment and its indicator scores in one transaction
// so a partial write never leaves a scoreless record behind.
func (r *repository) Create(ctx context.Context, a *Assessment, scores []Score) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if len(scores) == 0 {
			return nil
		}
		return tx.Create(&scores).Error
	})
}

func (r *repository) FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Assessment, error) {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.EvaluatorID != "" {
		q = q.Where("evaluator_id = ?", f.EvaluatorID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Year != 0 {
		q = q.Where("EXTRACT(YEAR FROM assessment_date) = ?", f.Year)
	}

	var records []Assessment
	err := q.Order("assessment_date DESC, created_at DESC").Find(&records).Error
	return records, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Assessment, error) {
	var a Assessment
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Update replaces the score set when a non-nil slice is given; a nil slice
// leaves the stored scores untouched.
func (r *repository) Update(ctx context.Context, a *Assessment, scores []Score) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		if scores == nil {
			return nil
		}
		if err := tx.Delete(&Score{}, "assessment_id = ?", a.ID).Error; err != nil {
			return err
		}
		if len(scores) == 0 {
			return nil
		}
		return tx.Create(&scores).Error
	})
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Score{}, "assessment_id = ?", id).Error; err != nil {
			return err
		}
		q := tx
		if tenantID != "" {
			q = q.Where("tenant_id = ?", tenantID)
		}
		return q.Delete(&Assessment{}, "id = ?", id).Error
	})
}

func (r *repository) FindScores(ctx context.Context, assessmentID string) ([]Score, error) {
	var scores []Score
	err := r.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("indicator_name ASC").
		Find(&scores).Error
	return scores, err
}

func (r *repository) CreateIndicator(ctx context.Context, ind *StageIndicator) error {
	return r.db.WithContext(ctx).Create(ind).Error
}

func (r *repository) FindIndicators(ctx context.Context, tenantID, stageID string) ([]StageIndicator, error) {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if stageID != "" {
		q = q.Where("stage_id = ?", stageID)
	}

	var indicators []StageIndicator
	err := q.Order("name ASC").Find(&indicators).Error
	return indicators, err
}

func (r *repository) FindIndicatorByID(ctx context.Context, tenantID, id string) (*StageIndicator, error) {
	var ind StageIndicator
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.First(&ind, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ind, nil
}

func (r *repository) UpdateIndicator(ctx context.Context, ind *StageIndicator) error {
	return r.db.WithContext(ctx).Save(ind).Error
}

func (r *repository) DeleteIndicator(ctx context.Context, tenantID, id string) error {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	return q.Delete(&StageIndicator{}, "id = ?", id).Error
}

func (r *repository) UserName(ctx context.Context, userID string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).
		Table("users").
		Select("name").
		Where("id = ?", userID).
		Scan(&name).Error
	return name, err
}

// ReadinessRows pairs every user at the stage with their latest completed or
// reviewed assessment, if any.
func (r *repository) ReadinessRows(ctx context.Context, tenantID, stageID string) ([]readinessRow, error) {
	var rows []readinessRow
	q := r.db.WithContext(ctx).
		Table("users").
		Select("users.id as user_id, users.name as user_name, a.overall_score, a.assessment_date").
		Joins(`LEFT JOIN LATERAL (
			SELECT overall_score, assessment_date
			FROM psychological_assessments pa
			WHERE pa.user_id = users.id AND pa.status IN ('completed', 'reviewed')
			ORDER BY pa.assessment_date DESC
			LIMIT 1
		) a ON true`).
		Where("users.formative_stage_id = ?", stageID).
		Where("users.status = ?", "active").
		Order("users.name ASC")
	if tenantID != "" {
		q = q.Where("users.tenant_id = ?", tenantID)
	}
	err := q.Scan(&rows).Error
	return rows, err
}
