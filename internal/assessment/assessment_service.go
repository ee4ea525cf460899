package assessment

import (
	"context"
	"errors"
	"time"

	assessmenterrors "go-formacao/internal/assessment/errors"
	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	"go-formacao/internal/shared/apperror"
	"go-formacao/internal/shared/pdfkit"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReadyThreshold is the minimum overall score for a formando to count as
// ready for the next formative stage.
const ReadyThreshold = 70.0

//go:generate mockgen -source=assessment_service.go -destination=mock/assessment_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]AssessmentResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (AssessmentResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateAssessmentRequest) (AssessmentResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateAssessmentRequest) (AssessmentResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error

	GetIndicators(ctx context.Context, p *identity.Principal, stageID string) ([]IndicatorResponse, error)
	CreateIndicator(ctx context.Context, p *identity.Principal, req CreateIndicatorRequest) (IndicatorResponse, error)
	UpdateIndicator(ctx context.Context, p *identity.Principal, id string, req UpdateIndicatorRequest) (IndicatorResponse, error)
	DeleteIndicator(ctx context.Context, p *identity.Principal, id string) error

	ExportPDF(ctx context.Context, p *identity.Principal, id string) ([]byte, error)
	AnnualReportPDF(ctx context.Context, p *identity.Principal, userID string, year int) ([]byte, error)
	ReadinessReport(ctx context.Context, p *identity.Principal, stageID string) ([]ReadinessRow, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("assessment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assessment.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func tenantFor(p *identity.Principal) string {
	if p.IsSuperadmin() {
		return ""
	}
	return p.TenantID
}

// GetAll narrows by role: admins browse the tenant, formadores see the
// assessments they wrote, everyone else sees assessments about themselves.
func (s *service) GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]AssessmentResponse, error) {
	switch {
	case p.IsAdmin():
	case p.IsFormador():
		f.EvaluatorID = p.ID
	default:
		f.UserID = p.ID
		f.EvaluatorID = ""
	}

	records, err := s.repo.FindAll(ctx, tenantFor(p), f)
	if err != nil {
		return nil, err
	}

	out := make([]AssessmentResponse, len(records))
	for i, a := range records {
		out[i] = mapToResponse(a, nil)
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (AssessmentResponse, error) {
	a, err := s.findReadable(ctx, p, id)
	if err != nil {
		return AssessmentResponse{}, err
	}
	scores, err := s.repo.FindScores(ctx, a.ID.String())
	if err != nil {
		return AssessmentResponse{}, err
	}
	return mapToResponse(*a, scores), nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateAssessmentRequest) (AssessmentResponse, error) {
	if !p.IsFormador() && !p.IsAdmin() {
		return AssessmentResponse{}, assessmenterrors.ErrWriteRoleRequired
	}
	if p.TenantID == "" {
		return AssessmentResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return AssessmentResponse{}, tenanterrors.ErrInvalidTenantID
	}
	evaluatorID, err := uuid.Parse(p.ID)
	if err != nil {
		return AssessmentResponse{}, assessmenterrors.ErrInvalidAssessmentID
	}

	date, err := time.Parse("2006-01-02", req.AssessmentDate)
	if err != nil {
		return AssessmentResponse{}, apperror.InvalidField("assessment_date")
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	a := &Assessment{
		ID:             uuid.New(),
		TenantID:       tid,
		UserID:         uuid.MustParse(req.UserID),
		EvaluatorID:    evaluatorID,
		EvaluatorName:  p.Name,
		Type:           req.Type,
		Status:         status,
		AssessmentDate: date,
		Notes:          req.Notes,
	}

	scores, err := buildScores(a.ID, req.Scores)
	if err != nil {
		return AssessmentResponse{}, err
	}
	a.OverallScore = computeOverallScore(scores)

	if err := s.repo.Create(ctx, a, scores); err != nil {
		return AssessmentResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "psychological_assessments",
		ResourceID:   a.ID.String(),
		Details:      "Avaliação registrada",
	}); err != nil {
		return AssessmentResponse{}, err
	}

	return mapToResponse(*a, scores), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateAssessmentRequest) (AssessmentResponse, error) {
	a, err := s.findOwned(ctx, p, id)
	if err != nil {
		return AssessmentResponse{}, err
	}

	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.Status != nil {
		a.Status = *req.Status
	}
	if req.AssessmentDate != nil {
		date, err := time.Parse("2006-01-02", *req.AssessmentDate)
		if err != nil {
			return AssessmentResponse{}, apperror.InvalidField("assessment_date")
		}
		a.AssessmentDate = date
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}

	var scores []Score
	if req.Scores != nil {
		scores, err = buildScores(a.ID, req.Scores)
		if err != nil {
			return AssessmentResponse{}, err
		}
		a.OverallScore = computeOverallScore(scores)
	}

	if err := s.repo.Update(ctx, a, scores); err != nil {
		return AssessmentResponse{}, err
	}

	if scores == nil {
		scores, err = s.repo.FindScores(ctx, a.ID.String())
		if err != nil {
			return AssessmentResponse{}, err
		}
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     a.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "psychological_assessments",
		ResourceID:   a.ID.String(),
		Details:      "Avaliação atualizada",
	}); err != nil {
		return AssessmentResponse{}, err
	}

	return mapToResponse(*a, scores), nil
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
		ResourceType: "psychological_assessments",
		ResourceID:   id,
		Details:      "Avaliação removida",
	})
}

func (s *service) GetIndicators(ctx context.Context, p *identity.Principal, stageID string) ([]IndicatorResponse, error) {
	indicators, err := s.repo.FindIndicators(ctx, tenantFor(p), stageID)
	if err != nil {
		return nil, err
	}
	out := make([]IndicatorResponse, len(indicators))
	for i, ind := range indicators {
		out[i] = mapIndicator(ind)
	}
	return out, nil
}

func (s *service) CreateIndicator(ctx context.Context, p *identity.Principal, req CreateIndicatorRequest) (IndicatorResponse, error) {
	if !p.IsAdmin() {
		return IndicatorResponse{}, assessmenterrors.ErrWriteRoleRequired
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return IndicatorResponse{}, tenanterrors.ErrInvalidTenantID
	}

	maxScore := req.MaxScore
	if maxScore <= 0 {
		maxScore = 10
	}
	ind := &StageIndicator{
		ID:          uuid.New(),
		TenantID:    tid,
		StageID:     uuid.MustParse(req.StageID),
		Name:        req.Name,
		Description: req.Description,
		MaxScore:    maxScore,
	}
	if err := s.repo.CreateIndicator(ctx, ind); err != nil {
		return IndicatorResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "stage_indicators",
		ResourceID:   ind.ID.String(),
		Details:      "Indicador " + ind.Name + " criado",
	}); err != nil {
		return IndicatorResponse{}, err
	}

	return mapIndicator(*ind), nil
}

func (s *service) UpdateIndicator(ctx context.Context, p *identity.Principal, id string, req UpdateIndicatorRequest) (IndicatorResponse, error) {
	if !p.IsAdmin() {
		return IndicatorResponse{}, assessmenterrors.ErrWriteRoleRequired
	}
	ind, err := s.findIndicator(ctx, p, id)
	if err != nil {
		return IndicatorResponse{}, err
	}

	if req.Name != nil {
		ind.Name = *req.Name
	}
	if req.Description != nil {
		ind.Description = *req.Description
	}
	if req.MaxScore != nil {
		if *req.MaxScore <= 0 {
			return IndicatorResponse{}, assessmenterrors.ErrInvalidScore
		}
		ind.MaxScore = *req.MaxScore
	}

	if err := s.repo.UpdateIndicator(ctx, ind); err != nil {
		return IndicatorResponse{}, err
	}
	return mapIndicator(*ind), nil
}

func (s *service) DeleteIndicator(ctx context.Context, p *identity.Principal, id string) error {
	if !p.IsAdmin() {
		return assessmenterrors.ErrWriteRoleRequired
	}
	if _, err := s.findIndicator(ctx, p, id); err != nil {
		return err
	}
	return s.repo.DeleteIndicator(ctx, tenantFor(p), id)
}

func (s *service) ExportPDF(ctx context.Context, p *identity.Principal, id string) ([]byte, error) {
	a, err := s.findReadable(ctx, p, id)
	if err != nil {
		return nil, err
	}
	scores, err := s.repo.FindScores(ctx, a.ID.String())
	if err != nil {
		return nil, err
	}

	doc := pdfkit.NewDocument()
	doc.AddLine("Relatório de Avaliação")
	doc.AddBlank()
	s.writeAssessment(ctx, doc, a, scores)

	data, err := doc.Bytes()
	if err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     a.TenantID.String(),
		Action:       audit.ActionExport,
		ResourceType: "psychological_assessments",
		ResourceID:   a.ID.String(),
		Details:      "Avaliação exportada em PDF",
	}); err != nil {
		return nil, err
	}
	return data, nil
}

// AnnualReportPDF gathers every assessment of a user within a calendar year
// into a single report with a yearly average.
func (s *service) AnnualReportPDF(ctx context.Context, p *identity.Principal, userID string, year int) ([]byte, error) {
	if userID != p.ID && !p.IsFormador() && !p.IsAdmin() {
		return nil, assessmenterrors.ErrAssessmentForbidden
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperror.InvalidField("user_id")
	}
	if year == 0 {
		year = time.Now().Year()
	}

	records, err := s.repo.FindAll(ctx, tenantFor(p), ListFilter{UserID: userID, Year: year})
	if err != nil {
		return nil, err
	}

	name, err := s.repo.UserName(ctx, userID)
	if err != nil || name == "" {
		name = userID
	}

	doc := pdfkit.NewDocument()
	doc.AddLinef("Relatório Anual de Avaliações - %d", year)
	doc.AddLinef("Formando: %s", name)
	doc.AddLinef("Total de avaliações: %d", len(records))
	if len(records) > 0 {
		var sum float64
		for _, a := range records {
			sum += a.OverallScore
		}
		doc.AddLinef("Média anual: %.1f", sum/float64(len(records)))
	}
	doc.AddBlank()

	for i := range records {
		scores, err := s.repo.FindScores(ctx, records[i].ID.String())
		if err != nil {
			return nil, err
		}
		s.writeAssessment(ctx, doc, &records[i], scores)
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
		ResourceType: "psychological_assessments",
		ResourceID:   userID,
		Details:      "Relatório anual de avaliações exportado em PDF",
	}); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadinessReport lists every active user at the stage with the overall
// score of their latest completed assessment and whether it clears
// ReadyThreshold. Users never assessed appear as not ready.
func (s *service) ReadinessReport(ctx context.Context, p *identity.Principal, stageID string) ([]ReadinessRow, error) {
	if !p.IsFormador() && !p.IsAdmin() {
		return nil, assessmenterrors.ErrAssessmentForbidden
	}
	if _, err := uuid.Parse(stageID); err != nil {
		return nil, apperror.InvalidField("stage_id")
	}

	rows, err := s.repo.ReadinessRows(ctx, tenantFor(p), stageID)
	if err != nil {
		return nil, err
	}

	out := make([]ReadinessRow, len(rows))
	for i, row := range rows {
		out[i] = ReadinessRow{
			UserID:       row.UserID,
			UserName:     row.UserName,
			OverallScore: row.OverallScore,
			Ready:        row.OverallScore != nil && *row.OverallScore >= ReadyThreshold,
		}
		if row.AssessmentDate != nil {
			out[i].AssessmentDate = row.AssessmentDate.Format("2006-01-02")
		}
	}
	return out, nil
}

func (s *service) writeAssessment(ctx context.Context, doc *pdfkit.Document, a *Assessment, scores []Score) {
	name, err := s.repo.UserName(ctx, a.UserID.String())
	if err != nil || name == "" {
		name = a.UserID.String()
	}

	doc.AddLinef("Formando: %s", name)
	doc.AddLinef("Avaliador: %s", a.EvaluatorName)
	doc.AddLinef("Tipo: %s", typeLabel(a.Type))
	doc.AddLinef("Situação: %s", statusLabel(a.Status))
	doc.AddLinef("Data: %s", a.AssessmentDate.Format("02/01/2006"))
	doc.AddLinef("Nota geral: %.1f", a.OverallScore)
	if len(scores) > 0 {
		doc.AddLine("Indicadores:")
		for _, sc := range scores {
			doc.AddLinef("  %s: %.1f de %.1f (%.0f%%)",
				sc.IndicatorName, sc.Value, sc.MaxValue, normalizedPercent(sc.Value, sc.MaxValue))
		}
	}
	if a.Notes != "" {
		doc.AddLine("Observações:")
		doc.AddLine(a.Notes)
	}
}

func typeLabel(t string) string {
	switch t {
	case TypeAnnual:
		return "Anual"
	case TypeStageEvaluation:
		return "Avaliação de etapa"
	case TypeFollowUp:
		return "Acompanhamento"
	}
	return t
}

func statusLabel(st string) string {
	switch st {
	case StatusDraft:
		return "Rascunho"
	case StatusInProgress:
		return "Em andamento"
	case StatusCompleted:
		return "Concluída"
	case StatusReviewed:
		return "Revisada"
	}
	return st
}

func buildScores(assessmentID uuid.UUID, inputs []ScoreInput) ([]Score, error) {
	scores := make([]Score, 0, len(inputs))
	for _, in := range inputs {
		if in.MaxScore <= 0 || in.Score < 0 || in.Score > in.MaxScore {
			return nil, assessmenterrors.ErrInvalidScore
		}
		sc := Score{
			ID:            uuid.New(),
			AssessmentID:  assessmentID,
			IndicatorName: in.IndicatorName,
			Value:         in.Score,
			MaxValue:      in.MaxScore,
			Comment:       in.Comment,
		}
		if in.IndicatorID != "" {
			indID := uuid.MustParse(in.IndicatorID)
			sc.IndicatorID = &indID
		}
		scores = append(scores, sc)
	}
	return scores, nil
}

// findReadable allows the subject, the evaluator and admins.
func (s *service) findReadable(ctx context.Context, p *identity.Principal, id string) (*Assessment, error) {
	a, err := s.findVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if a.UserID.String() != p.ID && a.EvaluatorID.String() != p.ID && !p.IsAdmin() {
		return nil, assessmenterrors.ErrAssessmentForbidden
	}
	return a, nil
}

// findOwned is the write rule: only the evaluator or an admin.
func (s *service) findOwned(ctx context.Context, p *identity.Principal, id string) (*Assessment, error) {
	a, err := s.findVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if a.EvaluatorID.String() != p.ID && !p.IsAdmin() {
		return nil, assessmenterrors.ErrEvaluatorOnly
	}
	return a, nil
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*Assessment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, assessmenterrors.ErrInvalidAssessmentID
	}
	a, err := s.repo.FindByID(ctx, tenantFor(p), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assessmenterrors.ErrAssessmentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *service) findIndicator(ctx context.Context, p *identity.Principal, id string) (*StageIndicator, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, assessmenterrors.ErrIndicatorNotFound
	}
	ind, err := s.repo.FindIndicatorByID(ctx, tenantFor(p), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assessmenterrors.ErrIndicatorNotFound
		}
		return nil, err
	}
	return ind, nil
}

func mapToResponse(a Assessment, scores []Score) AssessmentResponse {
	resp := AssessmentResponse{
		ID:             a.ID.String(),
		TenantID:       a.TenantID.String(),
		UserID:         a.UserID.String(),
		EvaluatorID:    a.EvaluatorID.String(),
		EvaluatorName:  a.EvaluatorName,
		Type:           a.Type,
		Status:         a.Status,
		AssessmentDate: a.AssessmentDate.Format("2006-01-02"),
		Notes:          a.Notes,
		OverallScore:   a.OverallScore,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
	for _, sc := range scores {
		sr := ScoreResponse{
			ID:            sc.ID.String(),
			IndicatorName: sc.IndicatorName,
			Score:         sc.Value,
			MaxScore:      sc.MaxValue,
			Percent:       normalizedPercent(sc.Value, sc.MaxValue),
			Comment:       sc.Comment,
		}
		if sc.IndicatorID != nil {
			sr.IndicatorID = sc.IndicatorID.String()
		}
		resp.Scores = append(resp.Scores, sr)
	}
	return resp
}

func mapIndicator(ind StageIndicator) IndicatorResponse {
	return IndicatorResponse{
		ID:          ind.ID.String(),
		StageID:     ind.StageID.String(),
		Name:        ind.Name,
		Description: ind.Description,
		MaxScore:    ind.MaxScore,
	}
}
