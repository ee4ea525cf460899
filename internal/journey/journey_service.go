package journey

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	journeyerrors "go-formacao/internal/journey/errors"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=journey_service.go -destination=mock/journey_service_mock.go -package=mock
type Service interface {
	// RecordStageChange is the hook other services call when they move
	// a user's stage themselves; it only appends the history record.
	RecordStageChange(ctx context.Context, tenantID, userID string, fromStageID, toStageID *string, changedByID, changedByName, notes string) error

	Create(ctx context.Context, p *identity.Principal, req CreateJourneyRequest) (JourneyResponse, error)
	GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]JourneyResponse, int64, error)
	GetByUser(ctx context.Context, p *identity.Principal, userID string) ([]JourneyResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error
	StatsByStage(ctx context.Context, p *identity.Principal) ([]StageCountResponse, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("journey.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("journey.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func tenantFor(p *identity.Principal) string {
	if p.IsSuperadmin() {
		return ""
	}
	return p.TenantID
}

func (s *service) RecordStageChange(ctx context.Context, tenantID, userID string, fromStageID, toStageID *string, changedByID, changedByName, notes string) error {
	tid, err := uuid.Parse(tenantID)
	if err != nil {
		return tenanterrors.ErrInvalidTenantID
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return journeyerrors.ErrInvalidJourneyID
	}
	actorID, err := uuid.Parse(changedByID)
	if err != nil {
		return journeyerrors.ErrInvalidJourneyID
	}

	rec := &Record{
		ID:            uuid.New(),
		TenantID:      tid,
		UserID:        uid,
		FromStageID:   parseUUIDPtr(fromStageID),
		ToStageID:     parseUUIDPtr(toStageID),
		ChangedByID:   actorID,
		ChangedByName: changedByName,
		Notes:         notes,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("journey append failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Create is the manual path: it appends the record and moves the
// user's stage pointer in the same call.
func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateJourneyRequest) (JourneyResponse, error) {
	if p.TenantID == "" {
		return JourneyResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return JourneyResponse{}, tenanterrors.ErrInvalidTenantID
	}
	actorID, err := uuid.Parse(p.ID)
	if err != nil {
		return JourneyResponse{}, journeyerrors.ErrInvalidJourneyID
	}
	userID := uuid.MustParse(req.UserID)

	fromStage, err := s.repo.UserStage(ctx, p.TenantID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JourneyResponse{}, journeyerrors.ErrJourneyUserNotFound
		}
		return JourneyResponse{}, err
	}

	var toStage *uuid.UUID
	if req.ToStageID != "" {
		id := uuid.MustParse(req.ToStageID)
		toStage = &id
	}

	rec := &Record{
		ID:            uuid.New(),
		TenantID:      tid,
		UserID:        userID,
		FromStageID:   fromStage,
		ToStageID:     toStage,
		ChangedByID:   actorID,
		ChangedByName: p.Name,
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return JourneyResponse{}, err
	}

	if err := s.repo.SetUserStage(ctx, p.TenantID, req.UserID, toStage); err != nil {
		return JourneyResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "journeys",
		ResourceID:   rec.ID.String(),
		Details:      "Registro de jornada criado",
	}); err != nil {
		return JourneyResponse{}, err
	}

	s.logger.Info("journey record created",
		zap.String("journey_id", rec.ID.String()),
		zap.String("user_id", req.UserID),
	)
	return mapToResponse(*rec), nil
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]JourneyResponse, int64, error) {
	records, total, err := s.repo.FindAll(ctx, tenantFor(p), f)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(records), total, nil
}

func (s *service) GetByUser(ctx context.Context, p *identity.Principal, userID string) ([]JourneyResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, journeyerrors.ErrInvalidJourneyID
	}
	records, err := s.repo.FindByUser(ctx, tenantFor(p), userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return journeyerrors.ErrInvalidJourneyID
	}
	rec, err := s.repo.FindByID(ctx, tenantFor(p), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return journeyerrors.ErrJourneyNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, tenantFor(p), id); err != nil {
		return err
	}

	return s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     rec.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "journeys",
		ResourceID:   id,
		Details:      "Registro de jornada removido",
	})
}

func (s *service) StatsByStage(ctx context.Context, p *identity.Principal) ([]StageCountResponse, error) {
	return s.repo.CountByStage(ctx, tenantFor(p))
}

func parseUUIDPtr(v *string) *uuid.UUID {
	if v == nil || *v == "" {
		return nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil
	}
	return &id
}

func mapToResponse(rec Record) JourneyResponse {
	resp := JourneyResponse{
		ID:            rec.ID.String(),
		TenantID:      rec.TenantID.String(),
		UserID:        rec.UserID.String(),
		ChangedByID:   rec.ChangedByID.String(),
		ChangedByName: rec.ChangedByName,
		Notes:         rec.Notes,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
	}
	if rec.FromStageID != nil {
		resp.FromStageID = rec.FromStageID.String()
	}
	if rec.ToStageID != nil {
		resp.ToStageID = rec.ToStageID.String()
	}
	return resp
}

func mapToListResponse(records []Record) []JourneyResponse {
	res := make([]JourneyResponse, len(records))
	for i, rec := range records {
		res[i] = mapToResponse(rec)
	}
	return res
}
