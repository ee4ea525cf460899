package stats

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=stats_repo.go -destination=mock/stats_repo_mock.go -package=mock
type Repository interface {
	UserStats(ctx context.Context, tenantID string) (UserStats, error)
	ContentStats(ctx context.Context, tenantID string) (ContentStats, error)
	OrganizationStats(ctx context.Context, tenantID string) (OrganizationStats, error)
	RecentActivity(ctx context.Context, tenantID string, limit int) ([]ActivityEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) scoped(ctx context.Context, table, tenantID string) *gorm.DB {
	q := r.db.WithContext(ctx).Table(table)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}
	return q
}

func (r *repository) count(ctx context.Context, table, tenantID string) (int64, error) {
	var n int64
	err := r.scoped(ctx, table, tenantID).Count(&n).Error
	return n, err
}

func (r *repository) UserStats(ctx context.Context, tenantID string) (UserStats, error) {
	var s UserStats
	var err error

	if s.Total, err = r.count(ctx, "users", tenantID); err != nil {
		return s, err
	}
	if err = r.scoped(ctx, "users", tenantID).Where("status = ?", "active").Count(&s.Active).Error; err != nil {
		return s, err
	}
	if err = r.scoped(ctx, "users", tenantID).Where("status = ?", "inactive").Count(&s.Inactive).Error; err != nil {
		return s, err
	}
	if err = r.scoped(ctx, "users", tenantID).
		Where("created_at >= ?", time.Now().AddDate(0, 0, -30)).
		Count(&s.NewTotal).Error; err != nil {
		return s, err
	}

	type row struct {
		Key   string
		Count int64
	}

	var byRole []row
	if err = r.scoped(ctx, "users", tenantID).
		Select("role AS key, COUNT(*) AS count").
		Group("role").
		Scan(&byRole).Error; err != nil {
		return s, err
	}
	s.ByRole = make(map[string]int64, len(byRole))
	for _, v := range byRole {
		s.ByRole[v.Key] = v.Count
	}

	var byStage []row
	if err = r.scoped(ctx, "users", tenantID).
		Select("formative_stage_id::text AS key, COUNT(*) AS count").
		Where("formative_stage_id IS NOT NULL").
		Group("formative_stage_id").
		Scan(&byStage).Error; err != nil {
		return s, err
	}
	s.ByStage = make(map[string]int64, len(byStage))
	for _, v := range byStage {
		s.ByStage[v.Key] = v.Count
	}

	return s, nil
}

func (r *repository) ContentStats(ctx context.Context, tenantID string) (ContentStats, error) {
	var s ContentStats
	var err error

	if s.Documents, err = r.count(ctx, "documents", tenantID); err != nil {
		return s, err
	}
	if s.Videos, err = r.count(ctx, "videos", tenantID); err != nil {
		return s, err
	}
	if s.Certificates, err = r.count(ctx, "certificates", tenantID); err != nil {
		return s, err
	}
	if s.Acompanhamentos, err = r.count(ctx, "acompanhamentos", tenantID); err != nil {
		return s, err
	}
	if s.Assessments, err = r.count(ctx, "psychological_assessments", tenantID); err != nil {
		return s, err
	}
	return s, nil
}

func (r *repository) OrganizationStats(ctx context.Context, tenantID string) (OrganizationStats, error) {
	var s OrganizationStats
	var err error

	if s.Locations, err = r.count(ctx, "locations", tenantID); err != nil {
		return s, err
	}
	if s.Functions, err = r.count(ctx, "functions", tenantID); err != nil {
		return s, err
	}
	if s.FormativeStages, err = r.count(ctx, "formative_stages", tenantID); err != nil {
		return s, err
	}
	if err = r.scoped(ctx, "stage_cycles", tenantID).Where("status = ?", "active").Count(&s.OpenCycles).Error; err != nil {
		return s, err
	}
	if err = r.scoped(ctx, "stage_participations", tenantID).
		Where("status IN ?", []string{"enrolled", "in_progress"}).
		Count(&s.ActiveParticipations).Error; err != nil {
		return s, err
	}
	return s, nil
}

func (r *repository) RecentActivity(ctx context.Context, tenantID string, limit int) ([]ActivityEntry, error) {
	type row struct {
		ID           string
		UserID       string
		UserName     string
		Action       string
		ResourceType string
		ResourceID   string
		Details      string
		CreatedAt    time.Time
	}
	var rows []row
	err := r.scoped(ctx, "audit_logs", tenantID).
		Select("id::text, user_id::text, user_name, action, resource_type, resource_id, details, created_at").
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]ActivityEntry, len(rows))
	for i, v := range rows {
		out[i] = ActivityEntry{
			ID:           v.ID,
			UserID:       v.UserID,
			UserName:     v.UserName,
			Action:       v.Action,
			ResourceType: v.ResourceType,
			ResourceID:   v.ResourceID,
			Details:      v.Details,
			CreatedAt:    v.CreatedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}
