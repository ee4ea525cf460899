package subcategory

import (
	"context"
	"testing"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	subcategoryerrors "go-formacao/internal/subcategory/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSubcategoryRepo struct {
	subcategories map[string]*Subcategory
	contentCount  map[string]int64
}

func newFakeSubcategoryRepo() *fakeSubcategoryRepo {
	return &fakeSubcategoryRepo{
		subcategories: make(map[string]*Subcategory),
		contentCount:  make(map[string]int64),
	}
}

func (f *fakeSubcategoryRepo) Create(_ context.Context, sc *Subcategory) error {
	f.subcategories[sc.ID.String()] = sc
	return nil
}

func (f *fakeSubcategoryRepo) FindAll(_ context.Context, _ func(*gorm.DB) *gorm.DB) ([]Subcategory, error) {
	var out []Subcategory
	for _, sc := range f.subcategories {
		out = append(out, *sc)
	}
	return out, nil
}

func (f *fakeSubcategoryRepo) FindByID(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) (*Subcategory, error) {
	sc, ok := f.subcategories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sc
	return &cp, nil
}

func (f *fakeSubcategoryRepo) Update(_ context.Context, sc *Subcategory) error {
	f.subcategories[sc.ID.String()] = sc
	return nil
}

func (f *fakeSubcategoryRepo) Delete(_ context.Context, _ func(*gorm.DB) *gorm.DB, id string) error {
	delete(f.subcategories, id)
	return nil
}

func (f *fakeSubcategoryRepo) CountContent(_ context.Context, subcategoryID string) (int64, error) {
	return f.contentCount[subcategoryID], nil
}

type subcategoryRecorder struct {
	entries []audit.Entry
}

func (r *subcategoryRecorder) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func subcategoryAdmin(tenantID string) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		Name:     "Admin",
		Roles:    []string{identity.RoleAdmin},
	}
}

func TestSubcategoryCreate(t *testing.T) {
	repo := newFakeSubcategoryRepo()
	rec := &subcategoryRecorder{}
	svc := NewService(repo, rec)
	p := subcategoryAdmin(uuid.NewString())

	created, err := svc.Create(context.Background(), p, CreateSubcategoryRequest{
		Name:  "Liturgia",
		Order: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Liturgia", created.Name)
	assert.Equal(t, 2, created.Order)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "Subcategoria Liturgia criada", rec.entries[0].Details)
}

func TestSubcategoryDeleteBlockedWhileReferenced(t *testing.T) {
	repo := newFakeSubcategoryRepo()
	svc := NewService(repo, &subcategoryRecorder{})
	p := subcategoryAdmin(uuid.NewString())

	created, err := svc.Create(context.Background(), p, CreateSubcategoryRequest{Name: "Espiritualidade"})
	require.NoError(t, err)

	repo.contentCount[created.ID] = 3
	err = svc.Delete(context.Background(), p, created.ID)
	assert.ErrorIs(t, err, subcategoryerrors.ErrSubcategoryInUse)
	assert.Len(t, repo.subcategories, 1)

	// once the content is moved away the delete goes through
	repo.contentCount[created.ID] = 0
	require.NoError(t, svc.Delete(context.Background(), p, created.ID))
	assert.Empty(t, repo.subcategories)
}

func TestSubcategoryNotFound(t *testing.T) {
	svc := NewService(newFakeSubcategoryRepo(), &subcategoryRecorder{})
	p := subcategoryAdmin(uuid.NewString())

	_, err := svc.GetByID(context.Background(), p, uuid.NewString())
	assert.ErrorIs(t, err, subcategoryerrors.ErrSubcategoryNotFound)
}
