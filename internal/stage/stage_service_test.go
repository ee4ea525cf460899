package stage

import (
	"context"
	"testing"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	stageerrors "go-formacao/internal/stage/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStageRepo struct {
	stages map[string]*Stage
}

func newFakeStageRepo() *fakeStageRepo {
	return &fakeStageRepo{stages: make(map[string]*Stage)}
}

func (f *fakeStageRepo) Create(_ context.Context, st *Stage) error {
	f.stages[st.ID.String()] = st
	return nil
}

func (f *fakeStageRepo) FindAll(_ context.Context, _ func(*gorm.DB) *gorm.DB) ([]Stage, error) {
	var out []Stage
	for _, st := range f.stages {
		out = append(out, *st)
	}
	return out, nil
}

func (f *fakeStageRepo) FindByID(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) (*Stage, error) {
	st, ok := f.stages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (f *fakeStageRepo) Update(_ context.Context, st *Stage) error {
	f.stages[st.ID.String()] = st
	return nil
}

func (f *fakeStageRepo) Delete(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) error {
	delete(f.stages, id)
	return nil
}

type stageRecorder struct {
	entries []audit.Entry
}

func (r *stageRecorder) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func stageAdmin(tenantID string) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Name:     "Admin",
		Roles:    []string{identity.RoleAdmin},
	}
}

func TestStageCreate(t *testing.T) {
	repo := newFakeStageRepo()
	rec := &stageRecorder{}
	svc := NewService(repo, rec)
	p := stageAdmin(uuid.NewString())

	created, err := svc.Create(context.Background(), p, CreateStageRequest{
		Name:        "Postulantado",
		Description: "Primeira etapa formativa",
		Order:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Postulantado", created.Name)
	assert.Equal(t, 1, created.Order)
	assert.Equal(t, p.TenantID, created.TenantID)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionCreate, rec.entries[0].Action)
	assert.Equal(t, "Etapa Postulantado criada", rec.entries[0].Details)
}

func TestStageUpdateKeepsUnsetFields(t *testing.T) {
	repo := newFakeStageRepo()
	svc := NewService(repo, &stageRecorder{})
	p := stageAdmin(uuid.NewString())

	created, err := svc.Create(context.Background(), p, CreateStageRequest{Name: "Noviciado", Order: 2})
	require.NoError(t, err)

	order := 3
	updated, err := svc.Update(context.Background(), p, created.ID, UpdateStageRequest{Order: &order})
	require.NoError(t, err)
	assert.Equal(t, "Noviciado", updated.Name)
	assert.Equal(t, 3, updated.Order)
}

func TestStageErrors(t *testing.T) {
	svc := NewService(newFakeStageRepo(), &stageRecorder{})
	p := stageAdmin(uuid.NewString())

	_, err := svc.GetByID(context.Background(), p, "abc")
	assert.ErrorIs(t, err, stageerrors.ErrInvalidStageID)

	_, err = svc.GetByID(context.Background(), p, uuid.NewString())
	assert.ErrorIs(t, err, stageerrors.ErrStageNotFound)
}

func TestStageDelete(t *testing.T) {
	repo := newFakeStageRepo()
	rec := &stageRecorder{}
	svc := NewService(repo, rec)
	p := stageAdmin(uuid.NewString())

	created, err := svc.Create(context.Background(), p, CreateStageRequest{Name: "Juniorato", Order: 4})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p, created.ID))
	assert.Empty(t, repo.stages)

	last := rec.entries[len(rec.entries)-1]
	assert.Equal(t, audit.ActionDelete, last.Action)
	assert.Equal(t, "Etapa Juniorato removida", last.Details)
}
