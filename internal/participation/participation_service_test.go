package participation_test

import (
	"context"
	"database/sql"
	"testing"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	"go-formacao/internal/participation"
	participationerrors "go-formacao/internal/participation/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeParticipationRepository struct {
	withTxFn                func(tx *sql.Tx) participation.Repository
	createFn                func(ctx context.Context, pt *participation.Participation) error
	findAllFn               func(ctx context.Context, tenantID string, f participation.ListFilter) ([]participation.Participation, int64, error)
	findByIDFn              func(ctx context.Context, tenantID, id string) (*participation.Participation, error)
	findByUserFn            func(ctx context.Context, tenantID, userID string) ([]participation.Participation, error)
	findJourneyFn           func(ctx context.Context, tenantID, userID string) ([]participation.JourneyRow, error)
	userHeaderFn            func(ctx context.Context, tenantID, userID string) (*participation.UserHeader, error)
	countStagesFn           func(ctx context.Context, tenantID string) (int64, error)
	updateFn                func(ctx context.Context, pt *participation.Participation) error
	deleteFn                func(ctx context.Context, tenantID, id string) error
	existsForUserAndCycleFn func(ctx context.Context, tenantID, userID, cycleID string) (bool, error)
	userBelongsToTenantFn   func(ctx context.Context, tenantID, userID string) (bool, error)
	cycleIsOpenFn           func(ctx context.Context, tenantID, cycleID string) (bool, error)
	cycleCapacityFn         func(ctx context.Context, tenantID, cycleID string) (*int, error)
	countForCycleFn         func(ctx context.Context, tenantID, cycleID string) (int64, error)
	countByStatusFn         func(ctx context.Context, tenantID string) (map[string]int64, error)
}

func (f *fakeParticipationRepository) WithTx(tx *sql.Tx) participation.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeParticipationRepository) Create(ctx context.Context, pt *participation.Participation) error {
	if f.createFn != nil {
		return f.createFn(ctx, pt)
	}
	return nil
}

func (f *fakeParticipationRepository) FindAll(ctx context.Context, tenantID string, fl participation.ListFilter) ([]participation.Participation, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, tenantID, fl)
	}
	return nil, 0, nil
}

func (f *fakeParticipationRepository) FindByID(ctx context.Context, tenantID, id string) (*participation.Participation, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeParticipationRepository) FindByUser(ctx context.Context, tenantID, userID string) ([]participation.Participation, error) {
	if f.findByUserFn != nil {
		return f.findByUserFn(ctx, tenantID, userID)
	}
	return nil, nil
}

func (f *fakeParticipationRepository) FindJourney(ctx context.Context, tenantID, userID string) ([]participation.JourneyRow, error) {
	if f.findJourneyFn != nil {
		return f.findJourneyFn(ctx, tenantID, userID)
	}
	return nil, nil
}

func (f *fakeParticipationRepository) UserHeader(ctx context.Context, tenantID, userID string) (*participation.UserHeader, error) {
	if f.userHeaderFn != nil {
		return f.userHeaderFn(ctx, tenantID, userID)
	}
	return &participation.UserHeader{FullName: "Formando", Email: "formando@paroquia.org"}, nil
}

func (f *fakeParticipationRepository) CountStages(ctx context.Context, tenantID string) (int64, error) {
	if f.countStagesFn != nil {
		return f.countStagesFn(ctx, tenantID)
	}
	return 0, nil
}

func (f *fakeParticipationRepository) Update(ctx context.Context, pt *participation.Participation) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, pt)
	}
	return nil
}

func (f *fakeParticipationRepository) Delete(ctx context.Context, tenantID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, tenantID, id)
	}
	return nil
}

func (f *fakeParticipationRepository) ExistsForUserAndCycle(ctx context.Context, tenantID, userID, cycleID string) (bool, error) {
	if f.existsForUserAndCycleFn != nil {
		return f.existsForUserAndCycleFn(ctx, tenantID, userID, cycleID)
	}
	return false, nil
}

func (f *fakeParticipationRepository) UserBelongsToTenant(ctx context.Context, tenantID, userID string) (bool, error) {
	if f.userBelongsToTenantFn != nil {
		return f.userBelongsToTenantFn(ctx, tenantID, userID)
	}
	return true, nil
}

func (f *fakeParticipationRepository) CycleIsOpen(ctx context.Context, tenantID, cycleID string) (bool, error) {
	if f.cycleIsOpenFn != nil {
		return f.cycleIsOpenFn(ctx, tenantID, cycleID)
	}
	return true, nil
}

func (f *fakeParticipationRepository) CycleCapacity(ctx context.Context, tenantID, cycleID string) (*int, error) {
	if f.cycleCapacityFn != nil {
		return f.cycleCapacityFn(ctx, tenantID, cycleID)
	}
	return nil, nil
}

func (f *fakeParticipationRepository) CountForCycle(ctx context.Context, tenantID, cycleID string) (int64, error) {
	if f.countForCycleFn != nil {
		return f.countForCycleFn(ctx, tenantID, cycleID)
	}
	return 0, nil
}

func (f *fakeParticipationRepository) CountByStatus(ctx context.Context, tenantID string) (map[string]int64, error) {
	if f.countByStatusFn != nil {
		return f.countByStatusFn(ctx, tenantID)
	}
	return nil, nil
}

type nopRecorder struct {
	entries []audit.Entry
}

func (n *nopRecorder) Record(_ context.Context, e audit.Entry) error {
	n.entries = append(n.entries, e)
	return nil
}

type participationServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  participation.Service
	repo     *fakeParticipationRepository
	recorder *nopRecorder
}

func setupParticipationServiceTest(t *testing.T) *participationServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeParticipationRepository{}
	recorder := &nopRecorder{}
	svc := participation.NewService(db, repo, recorder)

	return &participationServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		recorder: recorder,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func adminPrincipal(tenantID string) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Name:     "Admin",
		Roles:    []string{identity.RoleAdmin},
		Status:   "active",
	}
}

func TestParticipationService_Enroll(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	p := adminPrincipal(tenantID)

	t.Run("creates enrolled participation", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		var created *participation.Participation
		deps.repo.createFn = func(_ context.Context, pt *participation.Participation) error {
			created = pt
			return nil
		}

		resp, err := deps.service.Enroll(ctx, p, participation.EnrollRequest{
			UserID:  uuid.NewString(),
			CycleID: uuid.NewString(),
			Notes:   "primeira turma",
		})
		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, participation.StatusEnrolled, resp.Status)
		assert.Equal(t, "primeira turma", resp.Notes)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		assert.Len(t, deps.recorder.entries, 1)
		assert.Equal(t, audit.ActionEnroll, deps.recorder.entries[0].Action)
	})

	t.Run("rejects duplicate enrollment", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.existsForUserAndCycleFn = func(_ context.Context, _, _, _ string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Enroll(ctx, p, participation.EnrollRequest{
			UserID:  uuid.NewString(),
			CycleID: uuid.NewString(),
		})
		assert.ErrorIs(t, err, participationerrors.ErrAlreadyEnrolled)
	})

	t.Run("rejects closed cycle", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.cycleIsOpenFn = func(_ context.Context, _, _ string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Enroll(ctx, p, participation.EnrollRequest{
			UserID:  uuid.NewString(),
			CycleID: uuid.NewString(),
		})
		assert.ErrorIs(t, err, participationerrors.ErrCycleNotEnrollable)
	})

	t.Run("rejects full cycle", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		limit := 30
		deps.repo.cycleCapacityFn = func(_ context.Context, _, _ string) (*int, error) {
			return &limit, nil
		}
		deps.repo.countForCycleFn = func(_ context.Context, _, _ string) (int64, error) {
			return 30, nil
		}

		_, err := deps.service.Enroll(ctx, p, participation.EnrollRequest{
			UserID:  uuid.NewString(),
			CycleID: uuid.NewString(),
		})
		assert.ErrorIs(t, err, participationerrors.ErrCycleFull)
	})

	t.Run("rejects user outside tenant", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		deps.repo.userBelongsToTenantFn = func(_ context.Context, _, _ string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Enroll(ctx, p, participation.EnrollRequest{
			UserID:  uuid.NewString(),
			CycleID: uuid.NewString(),
		})
		assert.ErrorIs(t, err, participationerrors.ErrUserNotInTenant)
	})
}

func TestParticipationService_Transitions(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	p := adminPrincipal(tenantID.String())

	seed := func(status string) (*fakeParticipationRepository, *participation.Participation) {
		pt := &participation.Participation{
			ID:       uuid.New(),
			TenantID: tenantID,
			UserID:   uuid.New(),
			CycleID:  uuid.New(),
			Status:   status,
		}
		repo := &fakeParticipationRepository{
			findByIDFn: func(_ context.Context, _, _ string) (*participation.Participation, error) {
				cp := *pt
				return &cp, nil
			},
		}
		return repo, pt
	}

	t.Run("approve stamps approver and completion date", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		repo, pt := seed(participation.StatusInProgress)
		deps.repo.findByIDFn = repo.findByIDFn

		var saved *participation.Participation
		deps.repo.updateFn = func(_ context.Context, updated *participation.Participation) error {
			saved = updated
			return nil
		}

		resp, err := deps.service.Approve(ctx, p, pt.ID.String(), participation.TransitionRequest{
			EvaluationNotes: "conduta exemplar",
		})
		assert.NoError(t, err)
		assert.Equal(t, participation.StatusApproved, resp.Status)
		assert.Equal(t, p.ID, resp.ApprovedBy)
		assert.Equal(t, p.Name, resp.ApprovedByName)
		assert.Equal(t, "conduta exemplar", resp.EvaluationNotes)
		assert.NotEmpty(t, resp.CompletionDate)
		assert.NotNil(t, saved.ApprovedBy)
		assert.Equal(t, p.Name, saved.ApprovedByName)
		assert.NotNil(t, saved.CompletionDate)

		assert.Len(t, deps.recorder.entries, 1)
		assert.Equal(t, audit.ActionApprove, deps.recorder.entries[0].Action)
	})

	t.Run("approve directly from enrolled", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		repo, pt := seed(participation.StatusEnrolled)
		deps.repo.findByIDFn = repo.findByIDFn

		resp, err := deps.service.Approve(ctx, p, pt.ID.String(), participation.TransitionRequest{})
		assert.NoError(t, err)
		assert.Equal(t, participation.StatusApproved, resp.Status)
	})

	t.Run("withdrawn cannot be withdrawn again", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		repo, pt := seed(participation.StatusWithdrawn)
		deps.repo.findByIDFn = repo.findByIDFn

		_, err := deps.service.Withdraw(ctx, p, pt.ID.String(), participation.TransitionRequest{})
		assert.ErrorIs(t, err, participationerrors.ErrInvalidStatusTransition)
	})

	t.Run("reproved can be revised to approved", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		repo, pt := seed(participation.StatusReproved)
		deps.repo.findByIDFn = repo.findByIDFn

		resp, err := deps.service.Approve(ctx, p, pt.ID.String(), participation.TransitionRequest{})
		assert.NoError(t, err)
		assert.Equal(t, participation.StatusApproved, resp.Status)
	})

	t.Run("withdrawn decision can still be revised", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		repo, pt := seed(participation.StatusWithdrawn)
		deps.repo.findByIDFn = repo.findByIDFn

		resp, err := deps.service.Reprove(ctx, p, pt.ID.String(), participation.TransitionRequest{})
		assert.NoError(t, err)
		assert.Equal(t, participation.StatusReproved, resp.Status)
	})

	t.Run("withdrawn is terminal", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, false)

		repo, pt := seed(participation.StatusWithdrawn)
		deps.repo.findByIDFn = repo.findByIDFn

		_, err := deps.service.Start(ctx, p, pt.ID.String(), participation.TransitionRequest{})
		assert.ErrorIs(t, err, participationerrors.ErrInvalidStatusTransition)
	})
}

func TestParticipationService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	p := adminPrincipal(tenantID.String())

	seed := func(status string) *participation.Participation {
		return &participation.Participation{
			ID:       uuid.New(),
			TenantID: tenantID,
			UserID:   uuid.New(),
			CycleID:  uuid.New(),
			Status:   status,
			Notes:    "original",
		}
	}

	t.Run("only non-nil fields overwrite", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		pt := seed(participation.StatusEnrolled)
		deps.repo.findByIDFn = func(_ context.Context, _, _ string) (*participation.Participation, error) {
			cp := *pt
			return &cp, nil
		}

		notes := "turma remanejada"
		resp, err := deps.service.Update(ctx, p, pt.ID.String(), participation.UpdateRequest{Notes: &notes})
		assert.NoError(t, err)
		assert.Equal(t, "turma remanejada", resp.Notes)
		assert.Equal(t, participation.StatusEnrolled, resp.Status)
		assert.Empty(t, resp.ApprovedBy)
	})

	t.Run("status moving into approved stamps the approver", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		pt := seed(participation.StatusInProgress)
		deps.repo.findByIDFn = func(_ context.Context, _, _ string) (*participation.Participation, error) {
			cp := *pt
			return &cp, nil
		}

		var saved *participation.Participation
		deps.repo.updateFn = func(_ context.Context, updated *participation.Participation) error {
			saved = updated
			return nil
		}

		status := participation.StatusApproved
		resp, err := deps.service.Update(ctx, p, pt.ID.String(), participation.UpdateRequest{Status: &status})
		assert.NoError(t, err)
		assert.Equal(t, participation.StatusApproved, resp.Status)
		assert.Equal(t, p.ID, resp.ApprovedBy)
		assert.Equal(t, p.Name, resp.ApprovedByName)
		assert.NotEmpty(t, resp.CompletionDate)
		assert.NotNil(t, saved.CompletionDate)
	})

	t.Run("explicit completion date is kept", func(t *testing.T) {
		deps := setupParticipationServiceTest(t)
		defer deps.db.Close()
		expectTx(t, deps.sqlMock, true)

		pt := seed(participation.StatusInProgress)
		deps.repo.findByIDFn = func(_ context.Context, _, _ string) (*participation.Participation, error) {
			cp := *pt
			return &cp, nil
		}

		status := participation.StatusReproved
		completed := "2025-11-30T18:00:00Z"
		resp, err := deps.service.Update(ctx, p, pt.ID.String(), participation.UpdateRequest{
			Status:         &status,
			CompletionDate: &completed,
		})
		assert.NoError(t, err)
		assert.Equal(t, completed, resp.CompletionDate)
	})
}

func TestParticipationService_FullJourney(t *testing.T) {
	deps := setupParticipationServiceTest(t)
	defer deps.db.Close()

	userID := uuid.New()
	tenantID := uuid.NewString()
	p := adminPrincipal(tenantID)

	deps.repo.findJourneyFn = func(_ context.Context, tid, uid string) ([]participation.JourneyRow, error) {
		assert.Equal(t, tenantID, tid)
		assert.Equal(t, userID.String(), uid)
		return []participation.JourneyRow{
			{
				ID:        uuid.New(),
				CycleID:   uuid.New(),
				CycleName: "Postulantado 2024",
				StageID:   "s1", StageName: "Postulantado", StageOrder: 1,
				Status: participation.StatusApproved,
			},
			{
				ID:        uuid.New(),
				CycleID:   uuid.New(),
				CycleName: "Noviciado 2025",
				StageID:   "s2", StageName: "Noviciado", StageOrder: 2,
				Status: participation.StatusInProgress,
			},
		}, nil
	}
	deps.repo.countStagesFn = func(_ context.Context, _ string) (int64, error) {
		return 4, nil
	}

	resp, err := deps.service.FullJourney(context.Background(), p, userID.String())
	assert.NoError(t, err)
	assert.Equal(t, "Formando", resp.UserName)
	assert.Len(t, resp.Participations, 2)
	assert.Equal(t, "Noviciado", resp.CurrentStage)
	assert.Equal(t, "Noviciado 2025", resp.CurrentCycle)
	assert.Equal(t, 1, resp.TotalStagesCompleted)
	assert.Equal(t, 25, resp.JourneyProgressPercent)
}

func TestParticipationService_FullJourneyUnknownUser(t *testing.T) {
	deps := setupParticipationServiceTest(t)
	defer deps.db.Close()

	deps.repo.userHeaderFn = func(_ context.Context, _, _ string) (*participation.UserHeader, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.FullJourney(context.Background(), adminPrincipal(uuid.NewString()), uuid.NewString())
	assert.ErrorIs(t, err, participationerrors.ErrJourneyUserNotFound)
}

func TestParticipationService_Stats(t *testing.T) {
	deps := setupParticipationServiceTest(t)
	defer deps.db.Close()

	deps.repo.countByStatusFn = func(_ context.Context, tenantID string) (map[string]int64, error) {
		assert.NotEmpty(t, tenantID)
		return map[string]int64{
			participation.StatusEnrolled:   4,
			participation.StatusInProgress: 2,
			participation.StatusApproved:   9,
		}, nil
	}

	resp, err := deps.service.Stats(context.Background(), adminPrincipal(uuid.NewString()))
	assert.NoError(t, err)
	assert.Equal(t, int64(15), resp.Total)
	assert.Equal(t, int64(9), resp.ByStatus[participation.StatusApproved])
}
