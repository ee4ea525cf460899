package cycle

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=cycle_repo.go -destination=mock/cycle_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Cycle) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, stageID string) ([]Cycle, error)
	FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*Cycle, error)
	Update(ctx context.Context, c *Cycle) error
	Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error
	CountParticipants(ctx context.Context, cycleID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Cycle) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB, stageID string) ([]Cycle, error) {
	var cycles []Cycle
	q := r.db.WithContext(ctx).Scopes(scope)
	if stageID != "" {
		q = q.Where("stage_id = ?", stageID)
	}
	err := q.Order("created_at DESC").Find(&cycles).Error
	return cycles, err
}

func (r *repository) FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*Cycle, error) {
	var c Cycle
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Cycle) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error {
	return r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		Delete(&Cycle{}).Error
}

func (r *repository) CountParticipants(ctx context.Context, cycleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("stage_participations").
		Where("cycle_id = ?", cycleID).
		Count(&count).Error
	return count, err
}
