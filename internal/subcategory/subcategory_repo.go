package subcategory

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=subcategory_repo.go -destination=mock/subcategory_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, sc *Subcategory) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Subcategory, error)
	FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*Subcategory, error)
	Update(ctx context.Context, sc *Subcategory) error
	Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error
	CountContent(ctx context.Context, subcategoryID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sc *Subcategory) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Subcategory, error) {
	var subcategories []Subcategory
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order(`"order" ASC`).
		Find(&subcategories).Error
	return subcategories, err
}

func (r *repository) FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*Subcategory, error) {
	var sc Subcategory
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		First(&sc).Error
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *repository) Update(ctx context.Context, sc *Subcategory) error {
	return r.db.WithContext(ctx).Save(sc).Error
}

func (r *repository) Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error {
	return r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		Delete(&Subcategory{}).Error
}

// CountContent totals documents and videos still filed under the
// subcategory.
func (r *repository) CountContent(ctx context.Context, subcategoryID string) (int64, error) {
	var docs, videos int64
	if err := r.db.WithContext(ctx).
		Table("documents").
		Where("subcategory_id = ?", subcategoryID).
		Count(&docs).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).
		Table("videos").
		Where("subcategory_id = ?", subcategoryID).
		Count(&videos).Error; err != nil {
		return 0, err
	}
	return docs + videos, nil
}
