package participation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	participationerrors "go-formacao/internal/participation/errors"
	"go-formacao/internal/shared/apperror"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusEnrolled    = "enrolled"
	StatusInProgress  = "in_progress"
	StatusApproved    = "approved"
	StatusReproved    = "reproved"
	StatusWithdrawn   = "withdrawn"
	StatusTransferred = "transferred"
)

//go:generate mockgen -source=participation_service.go -destination=mock/participation_service_mock.go -package=mock
type Service interface {
	Enroll(ctx context.Context, p *identity.Principal, req EnrollRequest) (ParticipationResponse, error)
	GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]ParticipationResponse, int64, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (ParticipationResponse, error)
	GetByUser(ctx context.Context, p *identity.Principal, userID string) ([]ParticipationResponse, error)
	FullJourney(ctx context.Context, p *identity.Principal, userID string) (FullJourneyResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateRequest) (ParticipationResponse, error)
	Start(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error)
	Approve(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error)
	Reprove(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error)
	Withdraw(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error)
	Transfer(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error
	Stats(ctx context.Context, p *identity.Principal) (ParticipationStatsResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("participation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("participation.service")
	}
	return &service{db: db, repo: repo, recorder: recorder, logger: l}
}

// tenantFor narrows queries to the caller's tenant; superadmins see all.
func tenantFor(p *identity.Principal) string {
	if p.IsSuperadmin() {
		return ""
	}
	return p.TenantID
}

// Enroll runs in a transaction so the duplicate check and the insert
// land together; a unique index on (user_id, cycle_id) backs it up.
func (s *service) Enroll(ctx context.Context, p *identity.Principal, req EnrollRequest) (ParticipationResponse, error) {
	if p.TenantID == "" {
		return ParticipationResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return ParticipationResponse{}, tenanterrors.ErrInvalidTenantID
	}
	userID := uuid.MustParse(req.UserID)
	cycleID := uuid.MustParse(req.CycleID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("enroll begin tx failed", zap.Error(err))
		return ParticipationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.UserBelongsToTenant(ctx, p.TenantID, req.UserID)
	if err != nil {
		return ParticipationResponse{}, err
	}
	if !belongs {
		return ParticipationResponse{}, participationerrors.ErrUserNotInTenant
	}

	open, err := qtx.CycleIsOpen(ctx, p.TenantID, req.CycleID)
	if err != nil {
		return ParticipationResponse{}, err
	}
	if !open {
		return ParticipationResponse{}, participationerrors.ErrCycleNotEnrollable
	}

	capacity, err := qtx.CycleCapacity(ctx, p.TenantID, req.CycleID)
	if err != nil {
		return ParticipationResponse{}, err
	}
	if capacity != nil {
		enrolled, err := qtx.CountForCycle(ctx, p.TenantID, req.CycleID)
		if err != nil {
			return ParticipationResponse{}, err
		}
		if enrolled >= int64(*capacity) {
			return ParticipationResponse{}, participationerrors.ErrCycleFull
		}
	}

	exists, err := qtx.ExistsForUserAndCycle(ctx, p.TenantID, req.UserID, req.CycleID)
	if err != nil {
		return ParticipationResponse{}, err
	}
	if exists {
		return ParticipationResponse{}, participationerrors.ErrAlreadyEnrolled
	}

	pt := &Participation{
		ID:             uuid.New(),
		TenantID:       tid,
		UserID:         userID,
		CycleID:        cycleID,
		Status:         StatusEnrolled,
		EnrollmentDate: time.Now().UTC(),
		Notes:          req.Notes,
	}
	if err := qtx.Create(ctx, pt); err != nil {
		// the unique index on (user_id, cycle_id) catches the race the
		// check above cannot see
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ParticipationResponse{}, participationerrors.ErrAlreadyEnrolled
		}
		s.logger.Error("enroll persist failed", zap.Error(err))
		return ParticipationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("enroll commit failed", zap.Error(err))
		return ParticipationResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionEnroll,
		ResourceType: "participations",
		ResourceID:   pt.ID.String(),
		Details:      "Usuário inscrito no ciclo",
	}); err != nil {
		return ParticipationResponse{}, err
	}

	s.logger.Info("enroll success",
		zap.String("participation_id", pt.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("cycle_id", req.CycleID),
	)
	return mapToResponse(*pt), nil
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]ParticipationResponse, int64, error) {
	participations, total, err := s.repo.FindAll(ctx, tenantFor(p), f)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(participations), total, nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (ParticipationResponse, error) {
	pt, err := s.findVisible(ctx, p, id)
	if err != nil {
		return ParticipationResponse{}, err
	}
	return mapToResponse(*pt), nil
}

func (s *service) GetByUser(ctx context.Context, p *identity.Principal, userID string) ([]ParticipationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, participationerrors.ErrInvalidParticipationID
	}
	participations, err := s.repo.FindByUser(ctx, tenantFor(p), userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(participations), nil
}

func (s *service) FullJourney(ctx context.Context, p *identity.Principal, userID string) (FullJourneyResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return FullJourneyResponse{}, participationerrors.ErrInvalidParticipationID
	}

	header, err := s.repo.UserHeader(ctx, tenantFor(p), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FullJourneyResponse{}, participationerrors.ErrJourneyUserNotFound
		}
		return FullJourneyResponse{}, err
	}

	rows, err := s.repo.FindJourney(ctx, tenantFor(p), userID)
	if err != nil {
		return FullJourneyResponse{}, err
	}

	resp := FullJourneyResponse{
		UserID:         userID,
		UserName:       header.FullName,
		UserEmail:      header.Email,
		Participations: make([]JourneyEntryResponse, 0, len(rows)),
	}

	completed := make(map[string]struct{})
	for _, row := range rows {
		entry := JourneyEntryResponse{
			ID:              row.ID.String(),
			CycleID:         row.CycleID.String(),
			CycleName:       row.CycleName,
			StageID:         row.StageID,
			StageName:       row.StageName,
			StageOrder:      row.StageOrder,
			Status:          row.Status,
			EnrollmentDate:  row.EnrollmentDate.Format(time.RFC3339),
			Notes:           row.Notes,
			EvaluationNotes: row.EvaluationNotes,
			ApprovedByName:  row.ApprovedByName,
		}
		if row.CompletionDate != nil {
			entry.CompletionDate = row.CompletionDate.Format(time.RFC3339)
		}
		resp.Participations = append(resp.Participations, entry)

		if row.Status == StatusApproved && row.StageID != "" {
			completed[row.StageID] = struct{}{}
		}
		if row.Status == StatusEnrolled || row.Status == StatusInProgress {
			resp.CurrentStage = row.StageName
			resp.CurrentCycle = row.CycleName
		}
	}
	resp.TotalStagesCompleted = len(completed)

	totalStages, err := s.repo.CountStages(ctx, tenantFor(p))
	if err != nil {
		return FullJourneyResponse{}, err
	}
	if totalStages > 0 {
		resp.JourneyProgressPercent = int(float64(len(completed)) / float64(totalStages) * 100)
	}
	return resp, nil
}

// Update is the generic admin edit, only non-nil fields overwrite. A
// status moving into approved or reproved stamps the approver the same
// way the dedicated endpoints do.
func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateRequest) (ParticipationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update begin tx failed", zap.Error(err))
		return ParticipationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pt, err := s.findVisibleWith(ctx, qtx, p, id)
	if err != nil {
		return ParticipationResponse{}, err
	}

	if req.Notes != nil {
		pt.Notes = *req.Notes
	}
	if req.EvaluationNotes != nil {
		pt.EvaluationNotes = *req.EvaluationNotes
	}
	if req.CompletionDate != nil {
		ts, err := time.Parse(time.RFC3339, *req.CompletionDate)
		if err != nil {
			return ParticipationResponse{}, apperror.InvalidField("completion_date")
		}
		pt.CompletionDate = &ts
	}
	if req.Status != nil {
		pt.Status = *req.Status
		if *req.Status == StatusApproved || *req.Status == StatusReproved {
			if err := stampDecision(pt, p, req.CompletionDate != nil); err != nil {
				return ParticipationResponse{}, err
			}
		}
	}

	if err := qtx.Update(ctx, pt); err != nil {
		s.logger.Error("update persist failed",
			zap.String("participation_id", id),
			zap.Error(err),
		)
		return ParticipationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update commit failed", zap.Error(err))
		return ParticipationResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     pt.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "participations",
		ResourceID:   pt.ID.String(),
		Details:      "Participação atualizada",
	}); err != nil {
		return ParticipationResponse{}, err
	}

	return mapToResponse(*pt), nil
}

func (s *service) Start(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error) {
	return s.transitionStatus(ctx, p, id, StatusInProgress, req)
}

func (s *service) Approve(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error) {
	return s.transitionStatus(ctx, p, id, StatusApproved, req)
}

func (s *service) Reprove(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error) {
	return s.transitionStatus(ctx, p, id, StatusReproved, req)
}

func (s *service) Withdraw(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error) {
	return s.transitionStatus(ctx, p, id, StatusWithdrawn, req)
}

func (s *service) Transfer(ctx context.Context, p *identity.Principal, id string, req TransitionRequest) (ParticipationResponse, error) {
	return s.transitionStatus(ctx, p, id, StatusTransferred, req)
}

// isAllowedStatusTransition encodes the participation lifecycle. An
// approval decision can be issued or revised from any state, withdrawn
// and transferred close the row for good.
func isAllowedStatusTransition(current, target string) bool {
	switch target {
	case StatusApproved, StatusReproved:
		return true
	case StatusInProgress:
		return current == StatusEnrolled
	case StatusWithdrawn, StatusTransferred:
		return current == StatusEnrolled || current == StatusInProgress
	default:
		return false
	}
}

// stampDecision records who signed the approval. The completion date is
// set to now unless the caller supplied one explicitly.
func stampDecision(pt *Participation, p *identity.Principal, keepCompletionDate bool) error {
	actorID, err := uuid.Parse(p.ID)
	if err != nil {
		return participationerrors.ErrInvalidParticipationID
	}
	pt.ApprovedBy = &actorID
	pt.ApprovedByName = p.Name
	if !keepCompletionDate {
		now := time.Now().UTC()
		pt.CompletionDate = &now
	}
	return nil
}

func (s *service) transitionStatus(ctx context.Context, p *identity.Principal, id, target string, req TransitionRequest) (ParticipationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition begin tx failed", zap.Error(err))
		return ParticipationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pt, err := s.findVisibleWith(ctx, qtx, p, id)
	if err != nil {
		return ParticipationResponse{}, err
	}

	if !isAllowedStatusTransition(pt.Status, target) {
		return ParticipationResponse{}, participationerrors.ErrInvalidStatusTransition
	}

	pt.Status = target
	if req.Notes != "" {
		pt.Notes = req.Notes
	}
	if target == StatusApproved || target == StatusReproved {
		if req.EvaluationNotes != "" {
			pt.EvaluationNotes = req.EvaluationNotes
		}
		if err := stampDecision(pt, p, false); err != nil {
			return ParticipationResponse{}, err
		}
	}

	if err := qtx.Update(ctx, pt); err != nil {
		s.logger.Error("transition persist failed",
			zap.String("participation_id", id),
			zap.Error(err),
		)
		return ParticipationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition commit failed", zap.Error(err))
		return ParticipationResponse{}, err
	}

	action := audit.ActionUpdate
	details := "Participação movida para " + target
	switch target {
	case StatusApproved:
		action = audit.ActionApprove
		details = "Participação aprovada"
	case StatusReproved:
		action = audit.ActionReprove
		details = "Participação reprovada"
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     pt.TenantID.String(),
		Action:       action,
		ResourceType: "participations",
		ResourceID:   pt.ID.String(),
		Details:      details,
	}); err != nil {
		return ParticipationResponse{}, err
	}

	s.logger.Info("transition success",
		zap.String("participation_id", id),
		zap.String("status", target),
	)
	return mapToResponse(*pt), nil
}

func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) error {
	pt, err := s.findVisible(ctx, p, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, tenantFor(p), id); err != nil {
		return err
	}

	return s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     pt.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "participations",
		ResourceID:   id,
		Details:      "Participação removida",
	})
}

func (s *service) Stats(ctx context.Context, p *identity.Principal) (ParticipationStatsResponse, error) {
	byStatus, err := s.repo.CountByStatus(ctx, tenantFor(p))
	if err != nil {
		return ParticipationStatsResponse{}, err
	}

	var total int64
	for _, v := range byStatus {
		total += v
	}
	return ParticipationStatsResponse{Total: total, ByStatus: byStatus}, nil
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*Participation, error) {
	return s.findVisibleWith(ctx, s.repo, p, id)
}

func (s *service) findVisibleWith(ctx context.Context, repo Repository, p *identity.Principal, id string) (*Participation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, participationerrors.ErrInvalidParticipationID
	}
	pt, err := repo.FindByID(ctx, tenantFor(p), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, participationerrors.ErrParticipationNotFound
		}
		return nil, err
	}
	return pt, nil
}

func mapToResponse(pt Participation) ParticipationResponse {
	resp := ParticipationResponse{
		ID:              pt.ID.String(),
		TenantID:        pt.TenantID.String(),
		UserID:          pt.UserID.String(),
		CycleID:         pt.CycleID.String(),
		Status:          pt.Status,
		EnrollmentDate:  pt.EnrollmentDate.Format(time.RFC3339),
		Notes:           pt.Notes,
		EvaluationNotes: pt.EvaluationNotes,
		ApprovedByName:  pt.ApprovedByName,
		CreatedAt:       pt.CreatedAt.Format(time.RFC3339),
	}
	if pt.ApprovedBy != nil {
		resp.ApprovedBy = pt.ApprovedBy.String()
	}
	if pt.CompletionDate != nil {
		resp.CompletionDate = pt.CompletionDate.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(participations []Participation) []ParticipationResponse {
	res := make([]ParticipationResponse, len(participations))
	for i, pt := range participations {
		res[i] = mapToResponse(pt)
	}
	return res
}
