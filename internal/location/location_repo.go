package location

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=location_repo.go -destination=mock/location_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, l *Location) error
	FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Location, error)
	FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*Location, error)
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]Location, error) {
	var locations []Location
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("name ASC").
		Find(&locations).Error
	return locations, err
}

func (r *repository) FindByID(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) (*Location, error) {
	var l Location
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, scope func(*gorm.DB) *gorm.DB, id string) error {
	return r.db.WithContext(ctx).
		Scopes(scope).
		Where("id = ?", id).
		Delete(&Location{}).Error
}
