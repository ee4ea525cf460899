package document

import (
	"context"
	"testing"

	"go-formacao/internal/audit"
	documenterrors "go-formacao/internal/document/errors"
	"go-formacao/internal/identity"
	"go-formacao/internal/permission"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDocumentRepo struct {
	docs      map[string]*Document
	downloads map[string]int
	views     map[string]int
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{
		docs:      make(map[string]*Document),
		downloads: make(map[string]int),
		views:     make(map[string]int),
	}
}

func (f *fakeDocumentRepo) Create(_ context.Context, d *Document) error {
	f.docs[d.ID.String()] = d
	return nil
}

func (f *fakeDocumentRepo) FindAll(_ context.Context, tenantID string, _ ListFilter) ([]Document, error) {
	var out []Document
	for _, d := range f.docs {
		if tenantID == "" || d.TenantID.String() == tenantID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) FindByID(_ context.Context, tenantID, id string) (*Document, error) {
	d, ok := f.docs[id]
	if !ok || (tenantID != "" && d.TenantID.String() != tenantID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocumentRepo) Update(_ context.Context, d *Document) error {
	f.docs[d.ID.String()] = d
	return nil
}

func (f *fakeDocumentRepo) Delete(_ context.Context, tenantID, id string) error {
	d, ok := f.docs[id]
	if ok && (tenantID == "" || d.TenantID.String() == tenantID) {
		delete(f.docs, id)
	}
	return nil
}

func (f *fakeDocumentRepo) IncrementViews(_ context.Context, id string) error {
	f.views[id]++
	return nil
}

func (f *fakeDocumentRepo) IncrementDownloads(_ context.Context, id string) error {
	f.downloads[id]++
	return nil
}

type capturingRecorder struct {
	entries []audit.Entry
}

func (r *capturingRecorder) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func seedDocument(repo *fakeDocumentRepo, tenantID uuid.UUID, title string, public bool, set permission.Set) *Document {
	d := &Document{
		ID:       uuid.New(),
		TenantID: tenantID,
		Title:    title,
		IsPublic: public,
		Set:      set,
	}
	repo.docs[d.ID.String()] = d
	return d
}

func TestDocumentListFiltersByPermission(t *testing.T) {
	repo := newFakeDocumentRepo()
	rec := &capturingRecorder{}
	svc := NewService(repo, rec)

	tenantID := uuid.New()
	stageID := uuid.NewString()

	seedDocument(repo, tenantID, "Aberto", true, permission.Set{})
	seedDocument(repo, tenantID, "Por etapa", false, permission.Set{AllowedStageIDs: []string{stageID}})
	seedDocument(repo, tenantID, "Restrito", false, permission.Set{AllowedUserIDs: []string{uuid.NewString()}})

	member := &identity.Principal{
		ID:               uuid.NewString(),
		TenantID:         tenantID.String(),
		Roles:            []string{identity.RoleUser},
		FormativeStageID: stageID,
	}
	docs, err := svc.GetAll(context.Background(), member, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	admin := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleAdmin},
	}
	docs, err = svc.GetAll(context.Background(), admin, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, docs, 3)
}

func TestDocumentGetByIDRestricted(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo, &capturingRecorder{})

	tenantID := uuid.New()
	d := seedDocument(repo, tenantID, "Restrito", false, permission.Set{
		AllowedUserIDs: []string{uuid.NewString()},
	})

	outsider := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}
	_, err := svc.GetByID(context.Background(), outsider, d.ID.String())
	assert.ErrorIs(t, err, documenterrors.ErrContentRestricted)

	listed := &identity.Principal{
		ID:       d.AllowedUserIDs[0],
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}
	resp, err := svc.GetByID(context.Background(), listed, d.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Restrito", resp.Title)
}

func TestDocumentTenantIsolation(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo, &capturingRecorder{})

	d := seedDocument(repo, uuid.New(), "Alheio", true, permission.Set{})

	other := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: uuid.NewString(),
		Roles:    []string{identity.RoleAdmin},
	}
	_, err := svc.GetByID(context.Background(), other, d.ID.String())
	assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)

	super := &identity.Principal{
		ID:    uuid.NewString(),
		Roles: []string{identity.RoleSuperadmin},
	}
	_, err = svc.GetByID(context.Background(), super, d.ID.String())
	assert.NoError(t, err)
}

func TestDocumentDownload(t *testing.T) {
	repo := newFakeDocumentRepo()
	rec := &capturingRecorder{}
	svc := NewService(repo, rec)

	tenantID := uuid.New()
	d := seedDocument(repo, tenantID, "Apostila", true, permission.Set{})
	p := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}

	_, err := svc.Download(context.Background(), p, d.ID.String())
	assert.ErrorIs(t, err, documenterrors.ErrNoFileAttached)

	d.FilePath = "documents/abc.pdf"
	d.FileName = "apostila.pdf"

	got, err := svc.Download(context.Background(), p, d.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "documents/abc.pdf", got.FilePath)
	assert.Equal(t, 1, repo.downloads[d.ID.String()])

	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionDownload, rec.entries[0].Action)
	assert.Equal(t, "Documento Apostila baixado", rec.entries[0].Details)
}

func TestDocumentDeleteReturnsFilePath(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo, &capturingRecorder{})

	tenantID := uuid.New()
	d := seedDocument(repo, tenantID, "Descartado", true, permission.Set{})
	d.FilePath = "documents/old.pdf"

	admin := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleAdmin},
	}
	path, err := svc.Delete(context.Background(), admin, d.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "documents/old.pdf", path)
	assert.Empty(t, repo.docs)
}

func TestDocumentGetIncrementsViews(t *testing.T) {
	repo := newFakeDocumentRepo()
	rec := &capturingRecorder{}
	svc := NewService(repo, rec)

	tenantID := uuid.New()
	d := seedDocument(repo, tenantID, "Apostila", true, permission.Set{})
	p := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}

	resp, err := svc.GetByID(context.Background(), p, d.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Views)
	assert.Equal(t, 1, repo.views[d.ID.String()])

	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionView, rec.entries[0].Action)
	assert.Equal(t, "Documento Apostila visualizado", rec.entries[0].Details)

	// a denied fetch never counts
	restricted := seedDocument(repo, tenantID, "Restrito", false, permission.Set{
		AllowedUserIDs: []string{uuid.NewString()},
	})
	_, err = svc.GetByID(context.Background(), p, restricted.ID.String())
	assert.ErrorIs(t, err, documenterrors.ErrContentRestricted)
	assert.Zero(t, repo.views[restricted.ID.String()])
}
