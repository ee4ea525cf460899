package stage

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	stageerrors "go-formacao/internal/stage/errors"
	"go-formacao/internal/tenant"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=stage_service.go -destination=mock/stage_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal) ([]StageResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (StageResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateStageRequest) (StageResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateStageRequest) (StageResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("stage.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stage.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal) ([]StageResponse, error) {
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	stages, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(stages), nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (StageResponse, error) {
	st, err := s.findVisible(ctx, p, id)
	if err != nil {
		return StageResponse{}, err
	}
	return mapToResponse(*st), nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateStageRequest) (StageResponse, error) {
	if p.TenantID == "" {
		return StageResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return StageResponse{}, tenanterrors.ErrInvalidTenantID
	}

	st := &Stage{
		ID:          uuid.New(),
		TenantID:    tid,
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return StageResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "stages",
		ResourceID:   st.ID.String(),
		Details:      "Etapa " + st.Name + " criada",
	}); err != nil {
		return StageResponse{}, err
	}

	return mapToResponse(*st), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateStageRequest) (StageResponse, error) {
	st, err := s.findVisible(ctx, p, id)
	if err != nil {
		return StageResponse{}, err
	}

	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.Order != nil {
		st.Order = *req.Order
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return StageResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     st.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "stages",
		ResourceID:   st.ID.String(),
		Details:      "Etapa " + st.Name + " atualizada",
	}); err != nil {
		return StageResponse{}, err
	}

	return mapToResponse(*st), nil
}

func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) error {
	st, err := s.findVisible(ctx, p, id)
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
		TenantID:     st.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "stages",
		ResourceID:   id,
		Details:      "Etapa " + st.Name + " removida",
	})
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*Stage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, stageerrors.ErrInvalidStageID
	}
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	st, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stageerrors.ErrStageNotFound
		}
		return nil, err
	}
	return st, nil
}

func mapToResponse(st Stage) StageResponse {
	return StageResponse{
		ID:          st.ID.String(),
		TenantID:    st.TenantID.String(),
		Name:        st.Name,
		Description: st.Description,
		Order:       st.Order,
		CreatedAt:   st.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(stages []Stage) []StageResponse {
	res := make([]StageResponse, len(stages))
	for i, st := range stages {
		res[i] = mapToResponse(st)
	}
	return res
}
