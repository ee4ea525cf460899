package location

import (
	"context"
	"testing"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	locationerrors "go-formacao/internal/location/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLocationRepo struct {
	locations map[string]*Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[string]*Location)}
}

func (f *fakeLocationRepo) Create(_ context.Context, l *Location) error {
	f.locations[l.ID.String()] = l
	return nil
}

func (f *fakeLocationRepo) FindAll(_ context.Context, _ func(*gorm.DB) *gorm.DB) ([]Location, error) {
	var out []Location
	for _, l := range f.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeLocationRepo) FindByID(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) (*Location, error) {
	l, ok := f.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, l *Location) error {
	f.locations[l.ID.String()] = l
	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) error {
	delete(f.locations, id)
	return nil
}

type locationRecorder struct {
	entries []audit.Entry
}

func (r *locationRecorder) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func locationAdmin(tenantID string) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Name:     "Admin",
		Roles:    []string{identity.RoleAdmin},
	}
}

func TestLocationCreateAndUpdate(t *testing.T) {
	repo := newFakeLocationRepo()
	rec := &locationRecorder{}
	svc := NewService(repo, rec)
	p := locationAdmin(uuid.NewString())

	created, err := svc.Create(context.Background(), p, CreateLocationRequest{
		Name: "Casa de Formação",
		City: "Aparecida",
	})
	require.NoError(t, err)
	assert.Equal(t, "Casa de Formação", created.Name)
	assert.Equal(t, p.TenantID, created.TenantID)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionCreate, rec.entries[0].Action)
	assert.Equal(t, "Localidade Casa de Formação criada", rec.entries[0].Details)

	// partial update leaves the other fields alone
	city := "Guaratinguetá"
	updated, err := svc.Update(context.Background(), p, created.ID, UpdateLocationRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Casa de Formação", updated.Name)
	assert.Equal(t, "Guaratinguetá", updated.City)
}

func TestLocationGetByIDErrors(t *testing.T) {
	svc := NewService(newFakeLocationRepo(), &locationRecorder{})
	p := locationAdmin(uuid.NewString())

	_, err := svc.GetByID(context.Background(), p, "not-a-uuid")
	assert.ErrorIs(t, err, locationerrors.ErrInvalidLocationID)

	_, err = svc.GetByID(context.Background(), p, uuid.NewString())
	assert.ErrorIs(t, err, locationerrors.ErrLocationNotFound)
}

func TestLocationDelete(t *testing.T) {
	repo := newFakeLocationRepo()
	rec := &locationRecorder{}
	svc := NewService(repo, rec)
	p := locationAdmin(uuid.NewString())

	created, err := svc.Create(context.Background(), p, CreateLocationRequest{Name: "Seminário"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p, created.ID))
	assert.Empty(t, repo.locations)
	assert.Equal(t, audit.ActionDelete, rec.entries[len(rec.entries)-1].Action)
}
