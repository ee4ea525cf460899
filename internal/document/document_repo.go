package document

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, d *Document) error
	FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Document, error)
	FindByID(ctx context.Context, tenantID, id string) (*Document, error)
	Update(ctx context.Context, d *Document) error
	Delete(ctx context.Context, tenantID, id string) error
	IncrementViews(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context, tenantID string, f ListFilter) ([]Document, error) {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if f.SubcategoryID != "" {
		q = q.Where("subcategory_id = ?", f.SubcategoryID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var docs []Document
	err := q.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *repository) FindByID(ctx context.Context, tenantID, id string) (*Document, error) {
	var d Document
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	if err := q.First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Update(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	q := r.db.WithContext(ctx)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	return q.Delete(&Document{}, "id = ?", id).Error
}

// Counter bumps use UPDATE expressions so concurrent requests never
// lose increments.
func (r *repository) IncrementViews(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Document{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *repository) IncrementDownloads(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Document{}).
		Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
}
