package audit

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, l *Log) error
	FindAll(ctx context.Context, f Filter) ([]Log, int64, error)
	DistinctActions(ctx context.Context, tenantID string) ([]string, error)
	DistinctResourceTypes(ctx context.Context, tenantID string) ([]string, error)
	CountByColumn(ctx context.Context, tenantID, column string) (map[string]int64, error)
	TopUsers(ctx context.Context, tenantID string, limit int) ([]UserCount, error)
	CountAction(ctx context.Context, tenantID, action string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Log) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) scoped(ctx context.Context, tenantID string) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&Log{})
	if tenantID != "" {
		db = db.Where("tenant_id = ?", tenantID)
	}
	return db
}

func (r *repository) FindAll(ctx context.Context, f Filter) ([]Log, int64, error) {
	db := r.scoped(ctx, f.TenantID)

	if f.UserID != "" {
		db = db.Where("user_id = ?", f.UserID)
	}
	if f.Action != "" {
		db = db.Where("action = ?", f.Action)
	}
	if f.ResourceType != "" {
		db = db.Where("resource_type = ?", f.ResourceType)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		db = db.Where("user_name ILIKE ? OR details ILIKE ? OR resource_id ILIKE ?", like, like, like)
	}
	if f.DateFrom != "" {
		if t, err := time.Parse("2006-01-02", f.DateFrom); err == nil {
			db = db.Where("created_at >= ?", t)
		}
	}
	if f.DateTo != "" {
		if t, err := time.Parse("2006-01-02", f.DateTo); err == nil {
			// inclusive end of day
			db = db.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}
	if f.Offset > 0 {
		db = db.Offset(f.Offset)
	}

	var logs []Log
	err := db.Order("created_at DESC").Find(&logs).Error
	return logs, total, err
}

func (r *repository) DistinctActions(ctx context.Context, tenantID string) ([]string, error) {
	var actions []string
	err := r.scoped(ctx, tenantID).Distinct("action").Order("action").Pluck("action", &actions).Error
	return actions, err
}

func (r *repository) DistinctResourceTypes(ctx context.Context, tenantID string) ([]string, error) {
	var types []string
	err := r.scoped(ctx, tenantID).Distinct("resource_type").Order("resource_type").Pluck("resource_type", &types).Error
	return types, err
}

func (r *repository) CountByColumn(ctx context.Context, tenantID, column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}
	var rows []row
	err := r.scoped(ctx, tenantID).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, v := range rows {
		out[v.Key] = v.Count
	}
	return out, nil
}

func (r *repository) TopUsers(ctx context.Context, tenantID string, limit int) ([]UserCount, error) {
	var rows []UserCount
	err := r.scoped(ctx, tenantID).
		Select("user_id::text AS user_id, MAX(user_name) AS user_name, COUNT(*) AS count").
		Group("user_id").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountAction(ctx context.Context, tenantID, action string) (int64, error) {
	var count int64
	err := r.scoped(ctx, tenantID).Where("action = ?", action).Count(&count).Error
	return count, err
}
