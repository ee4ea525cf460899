package assessment

import (
	"bytes"
	"context"
	"testing"
	"time"

	assessmenterrors "go-formacao/internal/assessment/errors"
	"go-formacao/internal/audit"
	"go-formacao/internal/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAssessmentRepo struct {
	assessments map[string]*Assessment
	scores      map[string][]Score // assessmentID -> scores
	indicators  map[string]*StageIndicator
	names       map[string]string
	readiness   []readinessRow
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{
		assessments: make(map[string]*Assessment),
		scores:      make(map[string][]Score),
		indicators:  make(map[string]*StageIndicator),
		names:       make(map[string]string),
	}
}

func (f *fakeAssessmentRepo) Create(_ context.Context, a *Assessment, scores []Score) error {
	f.assessments[a.ID.String()] = a
	f.scores[a.ID.String()] = scores
	return nil
}

func (f *fakeAssessmentRepo) FindAll(_ context.Context, tenantID string, fl ListFilter) ([]Assessment, error) {
	var out []Assessment
	for _, a := range f.assessments {
		if tenantID != "" && a.TenantID.String() != tenantID {
			continue
		}
		if fl.UserID != "" && a.UserID.String() != fl.UserID {
			continue
		}
		if fl.EvaluatorID != "" && a.EvaluatorID.String() != fl.EvaluatorID {
			continue
		}
		if fl.Year != 0 && a.AssessmentDate.Year() != fl.Year {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAssessmentRepo) FindByID(_ context.Context, tenantID, id string) (*Assessment, error) {
	a, ok := f.assessments[id]
	if !ok || (tenantID != "" && a.TenantID.String() != tenantID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssessmentRepo) Update(_ context.Context, a *Assessment, scores []Score) error {
	f.assessments[a.ID.String()] = a
	if scores != nil {
		f.scores[a.ID.String()] = scores
	}
	return nil
}

func (f *fakeAssessmentRepo) Delete(_ context.Context, _, id string) error {
	delete(f.assessments, id)
	delete(f.scores, id)
	return nil
}

func (f *fakeAssessmentRepo) FindScores(_ context.Context, assessmentID string) ([]Score, error) {
	return f.scores[assessmentID], nil
}

func (f *fakeAssessmentRepo) CreateIndicator(_ context.Context, ind *StageIndicator) error {
	f.indicators[ind.ID.String()] = ind
	return nil
}

func (f *fakeAssessmentRepo) FindIndicators(_ context.Context, tenantID, stageID string) ([]StageIndicator, error) {
	var out []StageIndicator
	for _, ind := range f.indicators {
		if tenantID != "" && ind.TenantID.String() != tenantID {
			continue
		}
		if stageID != "" && ind.StageID.String() != stageID {
			continue
		}
		out = append(out, *ind)
	}
	return out, nil
}

func (f *fakeAssessmentRepo) FindIndicatorByID(_ context.Context, tenantID, id string) (*StageIndicator, error) {
	ind, ok := f.indicators[id]
	if !ok || (tenantID != "" && ind.TenantID.String() != tenantID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ind
	return &cp, nil
}

func (f *fakeAssessmentRepo) UpdateIndicator(_ context.Context, ind *StageIndicator) error {
	f.indicators[ind.ID.String()] = ind
	return nil
}

func (f *fakeAssessmentRepo) DeleteIndicator(_ context.Context, _, id string) error {
	delete(f.indicators, id)
	return nil
}

func (f *fakeAssessmentRepo) UserName(_ context.Context, userID string) (string, error) {
	return f.names[userID], nil
}

func (f *fakeAssessmentRepo) ReadinessRows(_ context.Context, _, _ string) ([]readinessRow, error) {
	return f.readiness, nil
}

type assessmentRecorder struct {
	entries []audit.Entry
}

func (r *assessmentRecorder) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func evaluatorPrincipal(tenantID uuid.UUID) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Name:     "Padre João",
		Roles:    []string{identity.RoleFormador},
	}
}

func TestComputeOverallScore(t *testing.T) {
	cases := []struct {
		name   string
		scores []Score
		want   float64
	}{
		{"no scores", nil, 0},
		{
			"single full score",
			[]Score{{Value: 10, MaxValue: 10}},
			100,
		},
		{
			"mixed maximums weigh equally",
			[]Score{
				{Value: 5, MaxValue: 10}, // 50%
				{Value: 3, MaxValue: 4},  // 75%
			},
			62.5,
		},
		{
			"zero max contributes nothing",
			[]Score{
				{Value: 5, MaxValue: 0},
				{Value: 8, MaxValue: 10},
			},
			40,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, computeOverallScore(tc.scores), 0.001)
		})
	}
}

func TestAssessmentCreateComputesOverallScore(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewService(repo, &assessmentRecorder{})

	tenantID := uuid.New()
	evaluator := evaluatorPrincipal(tenantID)

	created, err := svc.Create(context.Background(), evaluator, CreateAssessmentRequest{
		UserID:         uuid.NewString(),
		Type:           TypeAnnual,
		AssessmentDate: "2026-03-15",
		Scores: []ScoreInput{
			{IndicatorName: "Maturidade afetiva", Score: 8, MaxScore: 10},
			{IndicatorName: "Vida comunitária", Score: 3, MaxScore: 5},
		},
	})
	require.NoError(t, err)

	// (80 + 60) / 2
	assert.InDelta(t, 70.0, created.OverallScore, 0.001)
	assert.Equal(t, StatusDraft, created.Status)
	require.Len(t, created.Scores, 2)
	assert.InDelta(t, 80.0, created.Scores[0].Percent, 0.001)
}

func TestAssessmentCreateRejectsInvalidScore(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewService(repo, &assessmentRecorder{})

	evaluator := evaluatorPrincipal(uuid.New())

	_, err := svc.Create(context.Background(), evaluator, CreateAssessmentRequest{
		UserID:         uuid.NewString(),
		Type:           TypeFollowUp,
		AssessmentDate: "2026-03-15",
		Scores: []ScoreInput{
			{IndicatorName: "Oração", Score: 12, MaxScore: 10},
		},
	})
	assert.ErrorIs(t, err, assessmenterrors.ErrInvalidScore)
	assert.Empty(t, repo.assessments)
}

func TestAssessmentWritePermissions(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewService(repo, &assessmentRecorder{})

	tenantID := uuid.New()
	evaluator := evaluatorPrincipal(tenantID)

	plain := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}
	_, err := svc.Create(context.Background(), plain, CreateAssessmentRequest{
		UserID:         uuid.NewString(),
		Type:           TypeAnnual,
		AssessmentDate: "2026-03-15",
	})
	assert.ErrorIs(t, err, assessmenterrors.ErrWriteRoleRequired)

	created, err := svc.Create(context.Background(), evaluator, CreateAssessmentRequest{
		UserID:         uuid.NewString(),
		Type:           TypeAnnual,
		AssessmentDate: "2026-03-15",
	})
	require.NoError(t, err)

	otherFormador := evaluatorPrincipal(tenantID)
	status := StatusCompleted
	_, err = svc.Update(context.Background(), otherFormador, created.ID, UpdateAssessmentRequest{Status: &status})
	assert.ErrorIs(t, err, assessmenterrors.ErrEvaluatorOnly)

	err = svc.Delete(context.Background(), otherFormador, created.ID)
	assert.ErrorIs(t, err, assessmenterrors.ErrEvaluatorOnly)

	updated, err := svc.Update(context.Background(), evaluator, created.ID, UpdateAssessmentRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
}

func TestAssessmentUpdateRecomputesScore(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewService(repo, &assessmentRecorder{})

	tenantID := uuid.New()
	evaluator := evaluatorPrincipal(tenantID)

	created, err := svc.Create(context.Background(), evaluator, CreateAssessmentRequest{
		UserID:         uuid.NewString(),
		Type:           TypeStageEvaluation,
		AssessmentDate: "2026-03-15",
		Scores: []ScoreInput{
			{IndicatorName: "Estudos", Score: 5, MaxScore: 10},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, created.OverallScore, 0.001)

	updated, err := svc.Update(context.Background(), evaluator, created.ID, UpdateAssessmentRequest{
		Scores: []ScoreInput{
			{IndicatorName: "Estudos", Score: 9, MaxScore: 10},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, updated.OverallScore, 0.001)

	// notes-only update leaves the stored scores and total alone
	notes := "revisão"
	updated, err = svc.Update(context.Background(), evaluator, created.ID, UpdateAssessmentRequest{Notes: &notes})
	require.NoError(t, err)
	assert.InDelta(t, 90.0, updated.OverallScore, 0.001)
	require.Len(t, updated.Scores, 1)
}

func TestAssessmentListScopesByRole(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewService(repo, &assessmentRecorder{})

	tenantID := uuid.New()
	evaluatorA := evaluatorPrincipal(tenantID)
	evaluatorB := evaluatorPrincipal(tenantID)
	subject := uuid.New()

	seed := func(evaluatorID string, userID uuid.UUID) {
		a := &Assessment{
			ID:          uuid.New(),
			TenantID:    tenantID,
			UserID:      userID,
			EvaluatorID: uuid.MustParse(evaluatorID),
			Type:        TypeAnnual,
			Status:      StatusCompleted,
		}
		repo.assessments[a.ID.String()] = a
	}
	seed(evaluatorA.ID, subject)
	seed(evaluatorB.ID, uuid.New())

	listed, err := svc.GetAll(context.Background(), evaluatorA, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, evaluatorA.ID, listed[0].EvaluatorID)

	asSubject := &identity.Principal{
		ID:       subject.String(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}
	listed, err = svc.GetAll(context.Background(), asSubject, ListFilter{EvaluatorID: evaluatorB.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, subject.String(), listed[0].UserID)
}

func TestAssessmentSubjectCanReadButNotEdit(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewService(repo, &assessmentRecorder{})

	tenantID := uuid.New()
	evaluator := evaluatorPrincipal(tenantID)
	subject := uuid.New()

	a := &Assessment{
		ID:          uuid.New(),
		TenantID:    tenantID,
		UserID:      subject,
		EvaluatorID: uuid.MustParse(evaluator.ID),
		Type:        TypeAnnual,
		Status:      StatusCompleted,
	}
	repo.assessments[a.ID.String()] = a

	asSubject := &identity.Principal{
		ID:       subject.String(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}
	resp, err := svc.GetByID(context.Background(), asSubject, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, subject.String(), resp.UserID)

	status := StatusReviewed
	_, err = svc.Update(context.Background(), asSubject, a.ID.String(), UpdateAssessmentRequest{Status: &status})
	assert.ErrorIs(t, err, assessmenterrors.ErrEvaluatorOnly)
}

func TestAssessmentIndicatorsAdminOnly(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewService(repo, &assessmentRecorder{})

	tenantID := uuid.New()
	formador := evaluatorPrincipal(tenantID)

	_, err := svc.CreateIndicator(context.Background(), formador, CreateIndicatorRequest{
		StageID: uuid.NewString(),
		Name:    "Maturidade afetiva",
	})
	assert.ErrorIs(t, err, assessmenterrors.ErrWriteRoleRequired)

	admin := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleAdmin},
	}
	created, err := svc.CreateIndicator(context.Background(), admin, CreateIndicatorRequest{
		StageID: uuid.NewString(),
		Name:    "Maturidade afetiva",
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, created.MaxScore)
}

func TestAssessmentReadinessReport(t *testing.T) {
	repo := newFakeAssessmentRepo()
	svc := NewService(repo, &assessmentRecorder{})

	tenantID := uuid.New()
	formador := evaluatorPrincipal(tenantID)

	high := 85.0
	low := 40.0
	when := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	repo.readiness = []readinessRow{
		{UserID: uuid.NewString(), UserName: "Ana", OverallScore: &high, AssessmentDate: &when},
		{UserID: uuid.NewString(), UserName: "Bruno", OverallScore: &low, AssessmentDate: &when},
		{UserID: uuid.NewString(), UserName: "Carla"},
	}

	rows, err := svc.ReadinessReport(context.Background(), formador, uuid.NewString())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Ready)
	assert.Equal(t, "2026-05-02", rows[0].AssessmentDate)
	assert.False(t, rows[1].Ready)
	assert.False(t, rows[2].Ready)
	assert.Nil(t, rows[2].OverallScore)

	plain := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}
	_, err = svc.ReadinessReport(context.Background(), plain, uuid.NewString())
	assert.ErrorIs(t, err, assessmenterrors.ErrAssessmentForbidden)
}

func TestAssessmentAnnualReportPDF(t *testing.T) {
	repo := newFakeAssessmentRepo()
	rec := &assessmentRecorder{}
	svc := NewService(repo, rec)

	tenantID := uuid.New()
	evaluator := evaluatorPrincipal(tenantID)
	subject := uuid.NewString()
	repo.names[subject] = "Maria das Graças"

	for _, date := range []string{"2026-02-10", "2026-09-21"} {
		_, err := svc.Create(context.Background(), evaluator, CreateAssessmentRequest{
			UserID:         subject,
			Type:           TypeAnnual,
			AssessmentDate: date,
			Scores: []ScoreInput{
				{IndicatorName: "Vida comunitária", Score: 7, MaxScore: 10},
			},
		})
		require.NoError(t, err)
	}

	data, err := svc.AnnualReportPDF(context.Background(), evaluator, subject, 2026)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	last := rec.entries[len(rec.entries)-1]
	assert.Equal(t, audit.ActionExport, last.Action)
}
