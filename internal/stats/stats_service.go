package stats

import (
	"context"
	"encoding/json"
	"time"

	"go-formacao/internal/identity"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const recentActivityLimit = 10

//go:generate mockgen -source=stats_service.go -destination=mock/stats_service_mock.go -package=mock
type Service interface {
	Dashboard(ctx context.Context, p *identity.Principal) (DashboardResponse, error)
}

type service struct {
	repo     Repository
	rdb      *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService accepts a nil redis client, in which case every request hits
// the database directly.
func NewService(repo Repository, rdb *redis.Client, cacheTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("stats.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = 60 * time.Second
	}
	return &service{repo: repo, rdb: rdb, cacheTTL: cacheTTL, logger: l}
}

func tenantFor(p *identity.Principal) string {
	if p.IsSuperadmin() {
		return ""
	}
	return p.TenantID
}

func cacheKey(tenantID string) string {
	if tenantID == "" {
		return "stats:dashboard:all"
	}
	return "stats:dashboard:" + tenantID
}

// Dashboard serves from the per-tenant cache when it can. A broken redis
// never fails the request, the counters are just recomputed.
func (s *service) Dashboard(ctx context.Context, p *identity.Principal) (DashboardResponse, error) {
	tenantID := tenantFor(p)
	key := cacheKey(tenantID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var resp DashboardResponse
			if json.Unmarshal(cached, &resp) == nil {
				return resp, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
	}

	resp, err := s.compute(ctx, tenantID)
	if err != nil {
		return DashboardResponse{}, err
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}
	return resp, nil
}

func (s *service) compute(ctx context.Context, tenantID string) (DashboardResponse, error) {
	users, err := s.repo.UserStats(ctx, tenantID)
	if err != nil {
		return DashboardResponse{}, err
	}
	content, err := s.repo.ContentStats(ctx, tenantID)
	if err != nil {
		return DashboardResponse{}, err
	}
	org, err := s.repo.OrganizationStats(ctx, tenantID)
	if err != nil {
		return DashboardResponse{}, err
	}
	activity, err := s.repo.RecentActivity(ctx, tenantID, recentActivityLimit)
	if err != nil {
		return DashboardResponse{}, err
	}

	return DashboardResponse{
		Users:          users,
		Content:        content,
		Organization:   org,
		RecentActivity: activity,
		CachedAt:       time.Now().UTC().Format(time.RFC3339),
	}, nil
}
