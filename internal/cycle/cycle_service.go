package cycle

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	cycleerrors "go-formacao/internal/cycle/errors"
	"go-formacao/internal/identity"
	"go-formacao/internal/shared/apperror"
	"go-formacao/internal/tenant"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=cycle_service.go -destination=mock/cycle_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal, stageID string) ([]CycleResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (CycleResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateCycleRequest) (CycleResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateCycleRequest) (CycleResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("cycle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cycle.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal, stageID string) ([]CycleResponse, error) {
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	cycles, err := s.repo.FindAll(ctx, scope, stageID)
	if err != nil {
		return nil, err
	}

	res := make([]CycleResponse, len(cycles))
	for i, c := range cycles {
		count, err := s.repo.CountParticipants(ctx, c.ID.String())
		if err != nil {
			return nil, err
		}
		res[i] = mapToResponse(c, count)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (CycleResponse, error) {
	c, err := s.findVisible(ctx, p, id)
	if err != nil {
		return CycleResponse{}, err
	}
	count, err := s.repo.CountParticipants(ctx, c.ID.String())
	if err != nil {
		return CycleResponse{}, err
	}
	return mapToResponse(*c, count), nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateCycleRequest) (CycleResponse, error) {
	if p.TenantID == "" {
		return CycleResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return CycleResponse{}, tenanterrors.ErrInvalidTenantID
	}
	stageID, err := uuid.Parse(req.StageID)
	if err != nil {
		return CycleResponse{}, apperror.InvalidField("stage_id")
	}

	c := &Cycle{
		ID:              uuid.New(),
		TenantID:        tid,
		StageID:         stageID,
		Name:            req.Name,
		MaxParticipants: req.MaxParticipants,
		Status:          StatusActive,
	}
	if c.StartDate, err = parseDatePtr(req.StartDate); err != nil {
		return CycleResponse{}, apperror.InvalidField("start_date")
	}
	if c.EndDate, err = parseDatePtr(req.EndDate); err != nil {
		return CycleResponse{}, apperror.InvalidField("end_date")
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return CycleResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "cycles",
		ResourceID:   c.ID.String(),
		Details:      "Ciclo " + c.Name + " criado",
	}); err != nil {
		return CycleResponse{}, err
	}

	return mapToResponse(*c, 0), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateCycleRequest) (CycleResponse, error) {
	c, err := s.findVisible(ctx, p, id)
	if err != nil {
		return CycleResponse{}, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.StartDate != nil {
		if c.StartDate, err = parseDatePtr(*req.StartDate); err != nil {
			return CycleResponse{}, apperror.InvalidField("start_date")
		}
	}
	if req.EndDate != nil {
		if c.EndDate, err = parseDatePtr(*req.EndDate); err != nil {
			return CycleResponse{}, apperror.InvalidField("end_date")
		}
	}
	if req.MaxParticipants != nil {
		c.MaxParticipants = req.MaxParticipants
	}
	if req.Status != nil {
		c.Status = *req.Status
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return CycleResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     c.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "cycles",
		ResourceID:   c.ID.String(),
		Details:      "Ciclo " + c.Name + " atualizado",
	}); err != nil {
		return CycleResponse{}, err
	}

	count, err := s.repo.CountParticipants(ctx, c.ID.String())
	if err != nil {
		return CycleResponse{}, err
	}
	return mapToResponse(*c, count), nil
}

// Delete refuses while anyone is enrolled. Participations hold the
// formative history, dropping them with the cycle would erase it.
func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) error {
	c, err := s.findVisible(ctx, p, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountParticipants(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return cycleerrors.ErrCycleHasParticipants
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
		TenantID:     c.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "cycles",
		ResourceID:   id,
		Details:      "Ciclo " + c.Name + " removido",
	})
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*Cycle, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, cycleerrors.ErrInvalidCycleID
	}
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cycleerrors.ErrCycleNotFound
		}
		return nil, err
	}
	return c, nil
}

func parseDatePtr(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapToResponse(c Cycle, participantCount int64) CycleResponse {
	resp := CycleResponse{
		ID:               c.ID.String(),
		TenantID:         c.TenantID.String(),
		StageID:          c.StageID.String(),
		Name:             c.Name,
		MaxParticipants:  c.MaxParticipants,
		Status:           c.Status,
		ParticipantCount: participantCount,
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
	if c.StartDate != nil {
		resp.StartDate = c.StartDate.Format("2006-01-02")
	}
	if c.EndDate != nil {
		resp.EndDate = c.EndDate.Format("2006-01-02")
	}
	return resp
}
