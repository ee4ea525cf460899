package jobfunction

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=jobfunction_repo.go -destination=mock/jobfunction_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, f *JobFunction) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]JobFunction, error)
	FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*JobFunction, error)
	Update(ctx context.Context, f *JobFunction) error
	Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *JobFunction) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]JobFunction, error) {
	var functions []JobFunction
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("name ASC").
		Find(&functions).Error
	return functions, err
}

func (r *repository) FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*JobFunction, error) {
	var f JobFunction
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) Update(ctx context.Context, f *JobFunction) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *repository) Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error {
	return r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		Delete(&JobFunction{}).Error
}
