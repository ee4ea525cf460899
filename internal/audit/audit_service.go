package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"go-formacao/internal/identity"
	"go-formacao/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Action names shared by every package that records audit entries.
const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionView     = "view"
	ActionDownload = "download"
	ActionLogin    = "login"
	ActionRegister = "register"
	ActionEnroll   = "enroll"
	ActionApprove  = "approve"
	ActionReprove  = "reprove"
	ActionExport   = "export"
	ActionUpload   = "upload"
)

// Recorder is the narrow interface other services depend on.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Recorder
	GetAll(ctx context.Context, p *identity.Principal, f Filter) ([]LogResponse, int64, error)
	Actions(ctx context.Context, p *identity.Principal) ([]string, error)
	ResourceTypes(ctx context.Context, p *identity.Principal) ([]string, error)
	Summary(ctx context.Context, p *identity.Principal) (SummaryResponse, error)
	ExportCSV(ctx context.Context, p *identity.Principal, f Filter) ([]byte, error)
	UserActivity(ctx context.Context, p *identity.Principal, userID string, limit int) ([]LogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

// Record writes the entry synchronously. A failure here fails the calling
// request, mutations without a trail must not slip through.
func (s *service) Record(ctx context.Context, e Entry) error {
	userID, err := uuid.Parse(e.UserID)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "invalid audit actor", 500)
	}

	l := &Log{
		ID:           uuid.New(),
		UserID:       userID,
		UserName:     e.UserName,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      e.Details,
	}
	if e.TenantID != "" {
		tid, err := uuid.Parse(e.TenantID)
		if err != nil {
			return apperror.Wrap(err, apperror.CodeInternalError, "invalid audit tenant", 500)
		}
		l.TenantID = &tid
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("audit record failed",
			zap.String("action", e.Action),
			zap.String("resource_type", e.ResourceType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// tenantFor narrows queries to the caller's tenant; superadmins see all.
func tenantFor(p *identity.Principal) string {
	if p.IsSuperadmin() {
		return ""
	}
	return p.TenantID
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal, f Filter) ([]LogResponse, int64, error) {
	f.TenantID = tenantFor(p)
	logs, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(logs), total, nil
}

func (s *service) Actions(ctx context.Context, p *identity.Principal) ([]string, error) {
	return s.repo.DistinctActions(ctx, tenantFor(p))
}

func (s *service) ResourceTypes(ctx context.Context, p *identity.Principal) ([]string, error) {
	return s.repo.DistinctResourceTypes(ctx, tenantFor(p))
}

func (s *service) Summary(ctx context.Context, p *identity.Principal) (SummaryResponse, error) {
	tenantID := tenantFor(p)

	byAction, err := s.repo.CountByColumn(ctx, tenantID, "action")
	if err != nil {
		return SummaryResponse{}, err
	}
	byResource, err := s.repo.CountByColumn(ctx, tenantID, "resource_type")
	if err != nil {
		return SummaryResponse{}, err
	}
	topUsers, err := s.repo.TopUsers(ctx, tenantID, 10)
	if err != nil {
		return SummaryResponse{}, err
	}

	var total int64
	for _, v := range byAction {
		total += v
	}

	return SummaryResponse{
		Total:          total,
		ByAction:       byAction,
		ByResourceType: byResource,
		TopUsers:       topUsers,
		TotalViews:     byAction[ActionView],
		TotalDownloads: byAction[ActionDownload],
	}, nil
}

// ExportCSV renders the filtered trail with a UTF-8 BOM so spreadsheet
// apps pick the encoding up correctly.
func (s *service) ExportCSV(ctx context.Context, p *identity.Principal, f Filter) ([]byte, error) {
	f.TenantID = tenantFor(p)
	f.Limit = 0
	f.Offset = 0

	logs, _, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Data", "Usuário", "Ação", "Tipo de Recurso", "ID do Recurso", "Detalhes"}); err != nil {
		return nil, err
	}
	for _, l := range logs {
		record := []string{
			l.CreatedAt.Format("02/01/2006 15:04:05"),
			l.UserName,
			l.Action,
			l.ResourceType,
			l.ResourceID,
			l.Details,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (s *service) UserActivity(ctx context.Context, p *identity.Principal, userID string, limit int) ([]LogResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	logs, _, err := s.repo.FindAll(ctx, Filter{
		TenantID: tenantFor(p),
		UserID:   userID,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(logs), nil
}

func mapToResponse(l Log) LogResponse {
	resp := LogResponse{
		ID:           l.ID.String(),
		UserID:       l.UserID.String(),
		UserName:     l.UserName,
		Action:       l.Action,
		ResourceType: l.ResourceType,
		ResourceID:   l.ResourceID,
		Details:      l.Details,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
	if l.TenantID != nil {
		resp.TenantID = l.TenantID.String()
	}
	return resp
}

func mapToListResponse(logs []Log) []LogResponse {
	resp := make([]LogResponse, len(logs))
	for i, l := range logs {
		resp[i] = mapToResponse(l)
	}
	return resp
}
