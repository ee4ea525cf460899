package cycle

import (
	"context"
	"testing"

	"go-formacao/internal/audit"
	cycleerrors "go-formacao/internal/cycle/errors"
	"go-formacao/internal/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeCycleRepo struct {
	cycles       map[uuid.UUID]*Cycle
	participants map[uuid.UUID]int64
	deleted      []string
}

func newFakeCycleRepo() *fakeCycleRepo {
	return &fakeCycleRepo{
		cycles:       make(map[uuid.UUID]*Cycle),
		participants: make(map[uuid.UUID]int64),
	}
}

func (f *fakeCycleRepo) Create(_ context.Context, c *Cycle) error {
	cp := *c
	f.cycles[c.ID] = &cp
	return nil
}

func (f *fakeCycleRepo) FindAll(_ context.Context, _ func(*gorm.DB) *gorm.DB, stageID string) ([]Cycle, error) {
	var out []Cycle
	for _, c := range f.cycles {
		if stageID != "" && c.StageID.String() != stageID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCycleRepo) FindByID(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) (*Cycle, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	c, ok := f.cycles[cid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCycleRepo) Update(_ context.Context, c *Cycle) error {
	cp := *c
	f.cycles[c.ID] = &cp
	return nil
}

func (f *fakeCycleRepo) Delete(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) error {
	cid, _ := uuid.Parse(id)
	delete(f.cycles, cid)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCycleRepo) CountParticipants(_ context.Context, cycleID string) (int64, error) {
	cid, _ := uuid.Parse(cycleID)
	return f.participants[cid], nil
}

type fakeRecorder struct {
	entries []audit.Entry
}

func (f *fakeRecorder) Record(_ context.Context, e audit.Entry) error {
	f.entries = append(f.entries, e)
	return nil
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

func TestDeleteBlockedWhileParticipantsExist(t *testing.T) {
	repo := newFakeCycleRepo()
	rec := &fakeRecorder{}
	tid := uuid.New()
	p := adminPrincipal(tid.String())

	c := &Cycle{ID: uuid.New(), TenantID: tid, StageID: uuid.New(), Name: "Turma 2026", Status: StatusActive}
	repo.cycles[c.ID] = c
	repo.participants[c.ID] = 3

	svc := NewService(repo, rec, zap.NewNop())

	err := svc.Delete(context.Background(), p, c.ID.String())
	assert.ErrorIs(t, err, cycleerrors.ErrCycleHasParticipants)
	assert.Contains(t, repo.cycles, c.ID)

	repo.participants[c.ID] = 0
	err = svc.Delete(context.Background(), p, c.ID.String())
	require.NoError(t, err)
	assert.NotContains(t, repo.cycles, c.ID)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionDelete, rec.entries[0].Action)
}

func TestCreateParsesDatesAndDefaultsStatus(t *testing.T) {
	repo := newFakeCycleRepo()
	tid := uuid.New()
	p := adminPrincipal(tid.String())

	svc := NewService(repo, &fakeRecorder{}, zap.NewNop())

	resp, err := svc.Create(context.Background(), p, CreateCycleRequest{
		StageID:   uuid.NewString(),
		Name:      "Turma 2026",
		StartDate: "2026-02-01",
		EndDate:   "2026-11-30",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, resp.Status)
	assert.Equal(t, "2026-02-01", resp.StartDate)
	assert.Equal(t, "2026-11-30", resp.EndDate)

	_, err = svc.Create(context.Background(), p, CreateCycleRequest{
		StageID:   uuid.NewString(),
		Name:      "Turma inválida",
		StartDate: "01/02/2026",
	})
	assert.Error(t, err)
}

func TestGetByIDUnknownCycle(t *testing.T) {
	repo := newFakeCycleRepo()
	p := adminPrincipal(uuid.NewString())
	svc := NewService(repo, &fakeRecorder{}, zap.NewNop())

	_, err := svc.GetByID(context.Background(), p, uuid.NewString())
	assert.ErrorIs(t, err, cycleerrors.ErrCycleNotFound)

	_, err = svc.GetByID(context.Background(), p, "not-a-uuid")
	assert.ErrorIs(t, err, cycleerrors.ErrInvalidCycleID)
}
