package acompanhamento

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=acompanhamento_repo.go -destination=mock/acompanhamento_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, a *Acompanhamento) error
	FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Acompanhamento, error)
	FindByID(ctx context.Context, tenantID, id string) (*Acompanhamento, error)
	Update(ctx context.Context, a *Acompanhamento) error
	Delete(ctx context.Context, tenantID, id string) error
	FindFormandos(ctx context.Context, tenantID, formadorID string) ([]FormandoResponse, error)
	CountByStage(ctx context.Context, tenantID string) ([]StageCountResponse, error)
	UserName(ctx context.Context, userID string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Acompanhamento) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Acompanhamento, error) {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.FormadorID != "" {
		q = q.Where("formador_id = ?", f.FormadorID)
	}

	var records []Acompanhamento
	err := q.Order("date DESC, created_at DESC").Find(&records).Error
	return records, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Acompanhamento, error) {
	var a Acompanhamento
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Update(ctx context.Context, a *Acompanhamento) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	return q.Delete(&Acompanhamento{}, "id = ?", id).Error
}

func (r *repository) FindFormandos(ctx context.Context, tenantID, formadorID string) ([]FormandoResponse, error) {
	type row struct {
		ID               string
		Name             string
		Email            string
		FormativeStageID *string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, name, email, formative_stage_id").
		Where("tenant_id = ?", tenantID).
		Where("formador_id = ?", formadorID).
		Where("status = ?", "active").
		Order("name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]FormandoResponse, len(rows))
	for i, r := range rows {
		out[i] = FormandoResponse{ID: r.ID, Name: r.Name, Email: r.Email}
		if r.FormativeStageID != nil {
			out[i].FormativeStageID = *r.FormativeStageID
		}
	}
	return out, nil
}

// CountByStage groups records by the subject's current formative stage.
func (r *repository) CountByStage(ctx context.Context, tenantID string) ([]StageCountResponse, error) {
	var rows []StageCountResponse
	q := r.db.WithContext(ctx).
		Table("acompanhamentos").
		Select("users.formative_stage_id::text as stage_id, COUNT(*) as count").
		Joins("JOIN users ON users.id = acompanhamentos.user_id").
		Where("users.formative_stage_id IS NOT NULL").
		Group("users.formative_stage_id")
	if tenantID != "" {
		q = q.Where("acompanhamentos.tenant_id = ?", tenantID)
	}
	err := q.Scan(&rows).Error
	return rows, err
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
