package stage

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=stage_repo.go -destination=mock/stage_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, st *Stage) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Stage, error)
	FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*Stage, error)
	Update(ctx context.Context, st *Stage) error
	Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, st *Stage) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Stage, error) {
	var stages []Stage
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order(`"order" ASC`).
		Find(&stages).Error
	return stages, err
}

func (r *repository) FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*Stage, error) {
	var st Stage
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		First(&st).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *repository) Update(ctx context.Context, st *Stage) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *repository) Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error {
	return r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		Delete(&Stage{}).Error
}
