package certificate

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=certificate_repo.go -destination=mock/certificate_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Certificate) error
	FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Certificate, error)
	FindVisibleToFormador(ctx context.Context, tenantID, formadorID string, f ListFilter) ([]Certificate, error)
	FindByUser(ctx context.Context, tenantID, userID string) ([]Certificate, error)
	FindByID(ctx context.Context, tenantID, id string) (*Certificate, error)
	Update(ctx context.Context, c *Certificate) error
	Delete(ctx context.Context, tenantID, id string) error
	UserFormadorID(ctx context.Context, userID string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Certificate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Certificate, error) {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}

	var certs []Certificate
	err := q.Order("created_at DESC").Find(&certs).Error
	return certs, err
}

// FindVisibleToFormador returns the formador's own certificates plus the
// ones belonging to their formandos.
func (r *repository) FindVisibleToFormador(ctx context.Context, tenantID, formadorID string, f ListFilter) ([]Certificate, error) {
	formandos := r.db.Table("users").Select("id").Where("formador_id = ?", formadorID)

	q := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("user_id = ? OR user_id IN (?)", formadorID, formandos)
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}

	var certs []Certificate
	err := q.Order("created_at DESC").Find(&certs).Error
	return certs, err
}

func (r *repository) FindByUser(ctx context.Context, tenantID, userID string) ([]Certificate, error) {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}

	var certs []Certificate
	err := q.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&certs).Error
	return certs, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Certificate, error) {
	var c Certificate
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Certificate) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	return q.Delete(&Certificate{}, "id = ?", id).Error
}

func (r *repository) UserFormadorID(ctx context.Context, userID string) (string, error) {
	var row struct {
		FormadorID *string
	}
	err := r.db.WithContext(ctx).
		Table("users").
		Select("formador_id").
		Where("id = ?", userID).
		Scan(&row).Error
	if err != nil || row.FormadorID == nil {
		return "", err
	}
	return *row.FormadorID, nil
}
