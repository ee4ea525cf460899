package tenant

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tenant_repo.go -destination=mock/tenant_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Tenant) error
	FindByID(ctx context.Context, id string) (*Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)
	FindAll(ctx context.Context, search, status, plan string) ([]Tenant, error)
	Update(ctx context.Context, t *Tenant) error
	DeleteCascade(ctx context.Context, id string) error
	CountUsers(ctx context.Context, id string) (int64, error)
	Stats(ctx context.Context, id string) (TenantStatsResponse, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
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

func (r *repository) Create(ctx context.Context, t *Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).First(&t, "slug = ?", slug).Error
	return &t, err
}

func (r *repository) FindAll(ctx context.Context, search, status, plan string) ([]Tenant, error) {
	db := r.db.WithContext(ctx).Model(&Tenant{})
	if search != "" {
		like := "%" + search + "%"
		db = db.Where("name ILIKE ? OR slug ILIKE ?", like, like)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if plan != "" {
		db = db.Where("plan = ?", plan)
	}

	var tenants []Tenant
	err := db.Order("created_at DESC").Find(&tenants).Error
	return tenants, err
}

func (r *repository) Update(ctx context.Context, t *Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteCascade removes the tenant and everything under it. The schema
// does not rely on FK cascades, so child tables go explicitly, satellite
// tables through their parent's tenant.
func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		satellites := []string{
			"DELETE FROM video_progress WHERE video_id IN (SELECT id FROM videos WHERE tenant_id = ?)",
			"DELETE FROM video_comments WHERE video_id IN (SELECT id FROM videos WHERE tenant_id = ?)",
			"DELETE FROM video_evaluations WHERE video_id IN (SELECT id FROM videos WHERE tenant_id = ?)",
			"DELETE FROM video_attachments WHERE video_id IN (SELECT id FROM videos WHERE tenant_id = ?)",
			"DELETE FROM assessment_scores WHERE assessment_id IN (SELECT id FROM psychological_assessments WHERE tenant_id = ?)",
			"DELETE FROM password_resets WHERE user_id IN (SELECT id FROM users WHERE tenant_id = ?)",
		}
		for _, q := range satellites {
			if err := tx.Exec(q, id).Error; err != nil {
				return err
			}
		}

		tables := []string{
			"videos", "documents", "certificates", "acompanhamentos",
			"psychological_assessments", "stage_indicators",
			"stage_participations", "user_journeys", "stage_cycles",
			"formative_stages", "content_subcategories", "locations",
			"job_functions", "audit_logs", "users",
		}
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM "+table+" WHERE tenant_id = ?", id).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&Tenant{}, "id = ?", id).Error
	})
}

func (r *repository) CountUsers(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("users").Where("tenant_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) Stats(ctx context.Context, id string) (TenantStatsResponse, error) {
	var stats TenantStatsResponse

	if err := r.db.WithContext(ctx).Table("users").Where("tenant_id = ?", id).Count(&stats.Users).Error; err != nil {
		return stats, err
	}
	if err := r.db.WithContext(ctx).Table("documents").Where("tenant_id = ?", id).Count(&stats.Documents).Error; err != nil {
		return stats, err
	}
	if err := r.db.WithContext(ctx).Table("videos").Where("tenant_id = ?", id).Count(&stats.Videos).Error; err != nil {
		return stats, err
	}

	var bytes sql.NullFloat64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(file_size), 0)
		FROM (
			SELECT file_size FROM documents WHERE tenant_id = ?
			UNION ALL
			SELECT file_size FROM videos WHERE tenant_id = ? AND file_size IS NOT NULL
		) sizes
	`, id, id).Scan(&bytes).Error
	if err != nil {
		return stats, err
	}
	stats.StorageGB = bytes.Float64 / (1024 * 1024 * 1024)

	return stats, nil
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Tenant{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
