package tenant

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)

// OwnerCreator is implemented by the user service; a local interface keeps
// this package from importing it.
type OwnerCreator interface {
	CreateTenantOwner(ctx context.Context, tenantID, name, email, password string) (string, error)
}

//go:generate mockgen -source=tenant_service.go -destination=mock/tenant_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, search, status, plan string) ([]TenantResponse, error)
	GetByID(ctx context.Context, id string) (TenantResponse, error)
	GetBySlug(ctx context.Context, slug string) (PublicTenantResponse, error)
	Create(ctx context.Context, actor *identity.Principal, req CreateTenantRequest) (TenantResponse, error)
	Update(ctx context.Context, actor *identity.Principal, id string, req UpdateTenantRequest) (TenantResponse, error)
	Delete(ctx context.Context, actor *identity.Principal, id string) error
	Stats(ctx context.Context, id string) (TenantStatsResponse, error)
}

type service struct {
	repo     Repository
	owners   OwnerCreator
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, owners OwnerCreator, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("tenant.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.service")
	}
	return &service{repo: repo, owners: owners, recorder: recorder, logger: l}
}

func ValidateSlug(slug string) error {
	if len(slug) < 3 || !slugPattern.MatchString(slug) {
		return tenanterrors.ErrInvalidSlug
	}
	return nil
}

func (s *service) GetAll(ctx context.Context, search, status, plan string) ([]TenantResponse, error) {
	tenants, err := s.repo.FindAll(ctx, search, status, plan)
	if err != nil {
		return nil, err
	}

	resp := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		count, err := s.repo.CountUsers(ctx, t.ID.String())
		if err != nil {
			return nil, err
		}
		resp[i] = mapToResponse(t, count)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TenantResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TenantResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TenantResponse{}, err
	}

	count, err := s.repo.CountUsers(ctx, id)
	if err != nil {
		return TenantResponse{}, err
	}
	return mapToResponse(*t, count), nil
}

// GetBySlug backs the public login-screen lookup, inactive tenants stay
// invisible.
func (s *service) GetBySlug(ctx context.Context, slug string) (PublicTenantResponse, error) {
	t, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PublicTenantResponse{}, tenanterrors.ErrTenantNotFound
		}
		return PublicTenantResponse{}, err
	}
	if t.Status != StatusActive {
		return PublicTenantResponse{}, tenanterrors.ErrTenantNotFound
	}

	return PublicTenantResponse{
		ID:   t.ID.String(),
		Name: t.Name,
		Slug: t.Slug,
	}, nil
}

func (s *service) Create(ctx context.Context, actor *identity.Principal, req CreateTenantRequest) (TenantResponse, error) {
	if err := ValidateSlug(req.Slug); err != nil {
		return TenantResponse{}, err
	}

	taken, err := s.repo.SlugExists(ctx, req.Slug)
	if err != nil {
		return TenantResponse{}, err
	}
	if taken {
		return TenantResponse{}, tenanterrors.ErrSlugTaken
	}

	plan := req.Plan
	if plan == "" {
		plan = "basic"
	}

	t := &Tenant{
		ID:           uuid.New(),
		Name:         req.Name,
		Slug:         req.Slug,
		Status:       StatusActive,
		Plan:         plan,
		MaxUsers:     req.MaxUsers,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("create tenant persist failed", zap.Error(err))
		return TenantResponse{}, err
	}

	// every tenant starts with its owner admin
	ownerID, err := s.owners.CreateTenantOwner(ctx, t.ID.String(), req.OwnerName, req.OwnerEmail, req.OwnerPassword)
	if err != nil {
		s.logger.Error("create tenant owner failed",
			zap.String("tenant_id", t.ID.String()),
			zap.Error(err),
		)
		return TenantResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       actor.ID,
		UserName:     actor.Name,
		Action:       audit.ActionCreate,
		ResourceType: "tenant",
		ResourceID:   t.ID.String(),
		Details:      "Tenant " + t.Name + " criado com owner " + ownerID,
	}); err != nil {
		return TenantResponse{}, err
	}

	s.logger.Info("tenant created",
		zap.String("tenant_id", t.ID.String()),
		zap.String("slug", t.Slug),
	)
	return mapToResponse(*t, 1), nil
}

func (s *service) Update(ctx context.Context, actor *identity.Principal, id string, req UpdateTenantRequest) (TenantResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TenantResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TenantResponse{}, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Plan != nil {
		t.Plan = *req.Plan
	}
	if req.MaxUsers != nil {
		t.MaxUsers = req.MaxUsers
	}
	if req.ContactEmail != nil {
		t.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		t.ContactPhone = *req.ContactPhone
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return TenantResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       actor.ID,
		UserName:     actor.Name,
		Action:       audit.ActionUpdate,
		ResourceType: "tenant",
		ResourceID:   id,
	}); err != nil {
		return TenantResponse{}, err
	}

	count, err := s.repo.CountUsers(ctx, id)
	if err != nil {
		return TenantResponse{}, err
	}
	return mapToResponse(*t, count), nil
}

func (s *service) Delete(ctx context.Context, actor *identity.Principal, id string) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tenanterrors.ErrTenantNotFound
		}
		return err
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		s.logger.Error("tenant cascade delete failed",
			zap.String("tenant_id", id),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("tenant deleted", zap.String("tenant_id", id), zap.String("slug", t.Slug))

	return s.recorder.Record(ctx, audit.Entry{
		UserID:       actor.ID,
		UserName:     actor.Name,
		Action:       audit.ActionDelete,
		ResourceType: "tenant",
		ResourceID:   id,
		Details:      "Tenant " + t.Name + " removido com todos os dados",
	})
}

func (s *service) Stats(ctx context.Context, id string) (TenantStatsResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TenantStatsResponse{}, tenanterrors.ErrInvalidTenantID
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TenantStatsResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TenantStatsResponse{}, err
	}
	return s.repo.Stats(ctx, id)
}

func mapToResponse(t Tenant, userCount int64) TenantResponse {
	return TenantResponse{
		ID:           t.ID.String(),
		Name:         t.Name,
		Slug:         t.Slug,
		Status:       t.Status,
		Plan:         t.Plan,
		MaxUsers:     t.MaxUsers,
		ContactEmail: t.ContactEmail,
		ContactPhone: t.ContactPhone,
		UserCount:    userCount,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}
