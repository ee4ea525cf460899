package acompanhamento

import (
	"context"
	"errors"
	"time"

	acompanhamentoerrors "go-formacao/internal/acompanhamento/errors"
	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	"go-formacao/internal/shared/apperror"
	"go-formacao/internal/shared/pdfkit"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=acompanhamento_service.go -destination=mock/acompanhamento_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]AcompanhamentoResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (AcompanhamentoResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateAcompanhamentoRequest) (AcompanhamentoResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateAcompanhamentoRequest) (AcompanhamentoResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error
	MyFormandos(ctx context.Context, p *identity.Principal) ([]FormandoResponse, error)
	StatsByStage(ctx context.Context, p *identity.Principal) ([]StageCountResponse, error)
	ExportPDF(ctx context.Context, p *identity.Principal, id string) ([]byte, error)
	ExportListPDF(ctx context.Context, p *identity.Principal, f ListFilter) ([]byte, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("acompanhamento.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("acompanhamento.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func tenantFor(p *identity.Principal) string {
	if p.IsSuperadmin() {
		return ""
	}
	return p.TenantID
}

// GetAll narrows by role: admins browse the tenant, formadores see what
// they wrote, formandos see what was written about them.
func (s *service) GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]AcompanhamentoResponse, error) {
	switch {
	case p.IsAdmin():
		// filters pass through untouched
	case p.IsFormador():
		f.FormadorID = p.ID
	default:
		f.UserID = p.ID
		f.FormadorID = ""
	}

	records, err := s.repo.FindAll(ctx, tenantFor(p), f)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (AcompanhamentoResponse, error) {
	a, err := s.findReadable(ctx, p, id)
	if err != nil {
		return AcompanhamentoResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateAcompanhamentoRequest) (AcompanhamentoResponse, error) {
	if !p.IsFormador() && !p.IsAdmin() {
		return AcompanhamentoResponse{}, acompanhamentoerrors.ErrFormadorOnly
	}
	if p.TenantID == "" {
		return AcompanhamentoResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return AcompanhamentoResponse{}, tenanterrors.ErrInvalidTenantID
	}
	formadorID, err := uuid.Parse(p.ID)
	if err != nil {
		return AcompanhamentoResponse{}, acompanhamentoerrors.ErrInvalidAcompanhamentoID
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return AcompanhamentoResponse{}, apperror.InvalidField("date")
	}

	a := &Acompanhamento{
		ID:           uuid.New(),
		TenantID:     tid,
		UserID:       uuid.MustParse(req.UserID),
		FormadorID:   formadorID,
		FormadorName: p.Name,
		Date:         date,
		Time:         req.Time,
		Location:     req.Location,
		Content:      req.Content,
		Frequency:    req.Frequency,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return AcompanhamentoResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "acompanhamentos",
		ResourceID:   a.ID.String(),
		Details:      "Acompanhamento registrado",
	}); err != nil {
		return AcompanhamentoResponse{}, err
	}

	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateAcompanhamentoRequest) (AcompanhamentoResponse, error) {
	a, err := s.findOwned(ctx, p, id)
	if err != nil {
		return AcompanhamentoResponse{}, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return AcompanhamentoResponse{}, apperror.InvalidField("date")
		}
		a.Date = date
	}
	if req.Time != nil {
		a.Time = *req.Time
	}
	if req.Location != nil {
		a.Location = *req.Location
	}
	if req.Content != nil {
		a.Content = *req.Content
	}
	if req.Frequency != nil {
		a.Frequency = *req.Frequency
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return AcompanhamentoResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     a.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "acompanhamentos",
		ResourceID:   a.ID.String(),
		Details:      "Acompanhamento atualizado",
	}); err != nil {
		return AcompanhamentoResponse{}, err
	}

	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) error {
	a, err := s.findOwned(ctx, p, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, tenantFor(p), id); err != nil {
		return err
	}

	return s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     a.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "acompanhamentos",
		ResourceID:   id,
		Details:      "Acompanhamento removido",
	})
}

func (s *service) MyFormandos(ctx context.Context, p *identity.Principal) ([]FormandoResponse, error) {
	if !p.IsFormador() && !p.IsAdmin() {
		return nil, acompanhamentoerrors.ErrFormadorOnly
	}
	return s.repo.FindFormandos(ctx, p.TenantID, p.ID)
}

func (s *service) StatsByStage(ctx context.Context, p *identity.Principal) ([]StageCountResponse, error) {
	return s.repo.CountByStage(ctx, tenantFor(p))
}

func (s *service) ExportPDF(ctx context.Context, p *identity.Principal, id string) ([]byte, error) {
	a, err := s.findReadable(ctx, p, id)
	if err != nil {
		return nil, err
	}

	doc := pdfkit.NewDocument()
	doc.AddLine("Relatório de Acompanhamento")
	doc.AddBlank()
	s.writeRecord(ctx, doc, a)

	data, err := doc.Bytes()
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     a.TenantID.String(),
		Action:       audit.ActionExport,
		ResourceType: "acompanhamentos",
		ResourceID:   a.ID.String(),
		Details:      "Acompanhamento exportado em PDF",
	}); err != nil {
		return nil, err
	}
	return data, nil
}

// ExportListPDF renders every record the caller may see under the given
// filter into a single report.
func (s *service) ExportListPDF(ctx context.Context, p *identity.Principal, f ListFilter) ([]byte, error) {
	switch {
	case p.IsAdmin():
	case p.IsFormador():
		f.FormadorID = p.ID
	default:
		f.UserID = p.ID
		f.FormadorID = ""
	}

	records, err := s.repo.FindAll(ctx, tenantFor(p), f)
	if err != nil {
		return nil, err
	}

	doc := pdfkit.NewDocument()
	doc.AddLine("Relatório de Acompanhamentos")
	doc.AddLinef("Total de registros: %d", len(records))
	doc.AddBlank()
	for i := range records {
		s.writeRecord(ctx, doc, &records[i])
		doc.AddBlank()
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionExport,
		ResourceType: "acompanhamentos",
		Details:      "Relatório de acompanhamentos exportado em PDF",
	}); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *service) writeRecord(ctx context.Context, doc *pdfkit.Document, a *Acompanhamento) {
	name, err := s.repo.UserName(ctx, a.UserID.String())
	if err != nil || name == "" {
		name = a.UserID.String()
	}

	doc.AddLinef("Formando: %s", name)
	doc.AddLinef("Formador: %s", a.FormadorName)
	doc.AddLinef("Data: %s", a.Date.Format("02/01/2006"))
	if a.Time != "" {
		doc.AddLinef("Horário: %s", a.Time)
	}
	if a.Location != "" {
		doc.AddLinef("Local: %s", a.Location)
	}
	if a.Frequency != "" {
		doc.AddLinef("Frequência: %s", a.Frequency)
	}
	doc.AddLine("Conteúdo:")
	doc.AddLine(a.Content)
}

// findReadable allows the subject, the creating formador and admins.
func (s *service) findReadable(ctx context.Context, p *identity.Principal, id string) (*Acompanhamento, error) {
	a, err := s.findVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if a.UserID.String() != p.ID && a.FormadorID.String() != p.ID && !p.IsAdmin() {
		return nil, acompanhamentoerrors.ErrNotOwner
	}
	return a, nil
}

// findOwned is the write rule: only the creating formador or an admin.
func (s *service) findOwned(ctx context.Context, p *identity.Principal, id string) (*Acompanhamento, error) {
	a, err := s.findVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if a.FormadorID.String() != p.ID && !p.IsAdmin() {
		return nil, acompanhamentoerrors.ErrNotOwner
	}
	return a, nil
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*Acompanhamento, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, acompanhamentoerrors.ErrInvalidAcompanhamentoID
	}
	a, err := s.repo.FindByID(ctx, tenantFor(p), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, acompanhamentoerrors.ErrAcompanhamentoNotFound
		}
		return nil, err
	}
	return a, nil
}

func mapToResponse(a Acompanhamento) AcompanhamentoResponse {
	return AcompanhamentoResponse{
		ID:           a.ID.String(),
		TenantID:     a.TenantID.String(),
		UserID:       a.UserID.String(),
		FormadorID:   a.FormadorID.String(),
		FormadorName: a.FormadorName,
		Date:         a.Date.Format("2006-01-02"),
		Time:         a.Time,
		Location:     a.Location,
		Content:      a.Content,
		Frequency:    a.Frequency,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(records []Acompanhamento) []AcompanhamentoResponse {
	res := make([]AcompanhamentoResponse, len(records))
	for i, a := range records {
		res[i] = mapToResponse(a)
	}
	return res
}
