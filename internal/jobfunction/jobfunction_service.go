package jobfunction

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	jobfunctionerrors "go-formacao/internal/jobfunction/errors"
	"go-formacao/internal/tenant"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=jobfunction_service.go -destination=mock/jobfunction_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal) ([]FunctionResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (FunctionResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateFunctionRequest) (FunctionResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateFunctionRequest) (FunctionResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("jobfunction.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobfunction.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal) ([]FunctionResponse, error) {
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	functions, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(functions), nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (FunctionResponse, error) {
	f, err := s.findVisible(ctx, p, id)
	if err != nil {
		return FunctionResponse{}, err
	}
	return mapToResponse(*f), nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateFunctionRequest) (FunctionResponse, error) {
	if p.TenantID == "" {
		return FunctionResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return FunctionResponse{}, tenanterrors.ErrInvalidTenantID
	}

	f := &JobFunction{
		ID:          uuid.New(),
		TenantID:    tid,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return FunctionResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "functions",
		ResourceID:   f.ID.String(),
		Details:      "Função " + f.Name + " criada",
	}); err != nil {
		return FunctionResponse{}, err
	}

	return mapToResponse(*f), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateFunctionRequest) (FunctionResponse, error) {
	f, err := s.findVisible(ctx, p, id)
	if err != nil {
		return FunctionResponse{}, err
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Description != nil {
		f.Description = *req.Description
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return FunctionResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     f.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "functions",
		ResourceID:   f.ID.String(),
		Details:      "Função " + f.Name + " atualizada",
	}); err != nil {
		return FunctionResponse{}, err
	}

	return mapToResponse(*f), nil
}

func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) error {
	f, err := s.findVisible(ctx, p, id)
	if err != nil {
		return err
	}

	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, scope, id); err != nil {
		return err
	}

	return s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     f.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "functions",
		ResourceID:   id,
		Details:      "Função " + f.Name + " removida",
	})
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*JobFunction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, jobfunctionerrors.ErrInvalidFunctionID
	}
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	f, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jobfunctionerrors.ErrFunctionNotFound
		}
		return nil, err
	}
	return f, nil
}

func mapToResponse(f JobFunction) FunctionResponse {
	return FunctionResponse{
		ID:          f.ID.String(),
		TenantID:    f.TenantID.String(),
		Name:        f.Name,
		Description: f.Description,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(functions []JobFunction) []FunctionResponse {
	res := make([]FunctionResponse, len(functions))
	for i, f := range functions {
		res[i] = mapToResponse(f)
	}
	return res
}
