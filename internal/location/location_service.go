package location

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	locationerrors "go-formacao/internal/location/errors"
	"go-formacao/internal/tenant"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=location_service.go -destination=mock/location_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal) ([]LocationResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (LocationResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateLocationRequest) (LocationResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateLocationRequest) (LocationResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("location.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal) ([]LocationResponse, error) {
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	locations, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(locations), nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (LocationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LocationResponse{}, locationerrors.ErrInvalidLocationID
	}
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return LocationResponse{}, err
	}
	l, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LocationResponse{}, locationerrors.ErrLocationNotFound
		}
		return LocationResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateLocationRequest) (LocationResponse, error) {
	if p.TenantID == "" {
		return LocationResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return LocationResponse{}, tenanterrors.ErrInvalidTenantID
	}

	l := &Location{
		ID:          uuid.New(),
		TenantID:    tid,
		Name:        req.Name,
		City:        req.City,
		State:       req.State,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return LocationResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "locations",
		ResourceID:   l.ID.String(),
		Details:      "Localidade " + l.Name + " criada",
	}); err != nil {
		return LocationResponse{}, err
	}

	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateLocationRequest) (LocationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LocationResponse{}, locationerrors.ErrInvalidLocationID
	}
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return LocationResponse{}, err
	}
	l, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LocationResponse{}, locationerrors.ErrLocationNotFound
		}
		return LocationResponse{}, err
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.State != nil {
		l.State = *req.State
	}
	if req.Description != nil {
		l.Description = *req.Description
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return LocationResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     l.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "locations",
		ResourceID:   l.ID.String(),
		Details:      "Localidade " + l.Name + " atualizada",
	}); err != nil {
		return LocationResponse{}, err
	}

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return locationerrors.ErrInvalidLocationID
	}
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return err
	}
	l, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return locationerrors.ErrLocationNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, scope, id); err != nil {
		return err
	}

	return s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     l.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "locations",
		ResourceID:   id,
		Details:      "Localidade " + l.Name + " removida",
	})
}

func mapToResponse(l Location) LocationResponse {
	return LocationResponse{
		ID:          l.ID.String(),
		TenantID:    l.TenantID.String(),
		Name:        l.Name,
		City:        l.City,
		State:       l.State,
		Description: l.Description,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(locations []Location) []LocationResponse {
	res := make([]LocationResponse, len(locations))
	for i, l := range locations {
		res[i] = mapToResponse(l)
	}
	return res
}
