package jobfunction

import (
	"context"
	"testing"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	jobfunctionerrors "go-formacao/internal/jobfunction/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFunctionRepo struct {
	functions map[string]*JobFunction
}

func newFakeFunctionRepo() *fakeFunctionRepo {
	return &fakeFunctionRepo{functions: make(map[string]*JobFunction)}
}

func (f *fakeFunctionRepo) Create(_ context.Context, fn *JobFunction) error {
	f.functions[fn.ID.String()] = fn
	return nil
}

func (f *fakeFunctionRepo) FindAll(_ context.Context, _ func(*gorm.DB) *gorm.DB) ([]JobFunction, error) {
	var out []JobFunction
	for _, fn := range f.functions {
		out = append(out, *fn)
	}
	return out, nil
}

func (f *fakeFunctionRepo) FindByID(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) (*JobFunction, error) {
	fn, ok := f.functions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *fn
	return &cp, nil
}

func (f *fakeFunctionRepo) Update(_ context.Context, fn *JobFunction) error {
	f.functions[fn.ID.String()] = fn
	return nil
}

func (f *fakeFunctionRepo) Delete(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) error {
	delete(f.functions, id)
	return nil
}

type functionRecorder struct {
	entries []audit.Entry
}

func (r *functionRecorder) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func functionAdmin(tenantID string) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Name:     "Admin",
		Roles:    []string{identity.RoleAdmin},
	}
}

func TestFunctionCreateAndUpdate(t *testing.T) {
	repo := newFakeFunctionRepo()
	rec := &functionRecorder{}
	svc := NewService(repo, rec)
	p := functionAdmin(uuid.NewString())

	created, err := svc.Create(context.Background(), p, CreateFunctionRequest{
		Name:        "Catequista",
		Description: "Conduz a catequese paroquial",
	})
	require.NoError(t, err)
	assert.Equal(t, "Catequista", created.Name)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionCreate, rec.entries[0].Action)
	assert.Equal(t, "Função Catequista criada", rec.entries[0].Details)

	desc := "Coordena a catequese da paróquia"
	updated, err := svc.Update(context.Background(), p, created.ID, UpdateFunctionRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Catequista", updated.Name)
	assert.Equal(t, desc, updated.Description)
}

func TestFunctionErrors(t *testing.T) {
	svc := NewService(newFakeFunctionRepo(), &functionRecorder{})
	p := functionAdmin(uuid.NewString())

	_, err := svc.GetByID(context.Background(), p, "42")
	assert.ErrorIs(t, err, jobfunctionerrors.ErrInvalidFunctionID)

	_, err = svc.GetByID(context.Background(), p, uuid.NewString())
	assert.ErrorIs(t, err, jobfunctionerrors.ErrFunctionNotFound)
}

func TestFunctionDelete(t *testing.T) {
	repo := newFakeFunctionRepo()
	rec := &functionRecorder{}
	svc := NewService(repo, rec)
	p := functionAdmin(uuid.NewString())

	created, err := svc.Create(context.Background(), p, CreateFunctionRequest{Name: "Ministro da Eucaristia"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p, created.ID))
	assert.Empty(t, repo.functions)
	assert.Equal(t, "Função Ministro da Eucaristia removida", rec.entries[len(rec.entries)-1].Details)
}
