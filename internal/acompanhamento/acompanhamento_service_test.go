package acompanhamento

import (
	"bytes"
	"context"
	"testing"

	acompanhamentoerrors "go-formacao/internal/acompanhamento/errors"
	"go-formacao/internal/audit"
	"go-formacao/internal/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAcompanhamentoRepo struct {
	records   map[string]*Acompanhamento
	formandos map[string][]FormandoResponse // formadorID -> rows
	names     map[string]string
}

func newFakeAcompanhamentoRepo() *fakeAcompanhamentoRepo {
	return &fakeAcompanhamentoRepo{
		records:   make(map[string]*Acompanhamento),
		formandos: make(map[string][]FormandoResponse),
		names:     make(map[string]string),
	}
}

func (f *fakeAcompanhamentoRepo) Create(_ context.Context, a *Acompanhamento) error {
	f.records[a.ID.String()] = a
	return nil
}

func (f *fakeAcompanhamentoRepo) FindAll(_ context.Context, tenantID string, fl ListFilter) ([]Acompanhamento, error) {
	var out []Acompanhamento
	for _, a := range f.records {
		if tenantID != "" && a.TenantID.String() != tenantID {
			continue
		}
		if fl.UserID != "" && a.UserID.String() != fl.UserID {
			continue
		}
		if fl.FormadorID != "" && a.FormadorID.String() != fl.FormadorID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAcompanhamentoRepo) FindByID(_ context.Context, tenantID, id string) (*Acompanhamento, error) {
	a, ok := f.records[id]
	if !ok || (tenantID != "" && a.TenantID.String() != tenantID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAcompanhamentoRepo) Update(_ context.Context, a *Acompanhamento) error {
	f.records[a.ID.String()] = a
	return nil
}

func (f *fakeAcompanhamentoRepo) Delete(_ context.Context, _, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeAcompanhamentoRepo) FindFormandos(_ context.Context, _, formadorID string) ([]FormandoResponse, error) {
	return f.formandos[formadorID], nil
}

func (f *fakeAcompanhamentoRepo) CountByStage(_ context.Context, _ string) ([]StageCountResponse, error) {
	return nil, nil
}

func (f *fakeAcompanhamentoRepo) UserName(_ context.Context, userID string) (string, error) {
	return f.names[userID], nil
}

type acompRecorder struct {
	entries []audit.Entry
}

func (r *acompRecorder) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func formadorPrincipal(tenantID uuid.UUID) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Name:     "Irmã Teresa",
		Roles:    []string{identity.RoleFormador},
	}
}

func TestAcompanhamentoOwnership(t *testing.T) {
	repo := newFakeAcompanhamentoRepo()
	svc := NewService(repo, &acompRecorder{})

	tenantID := uuid.New()
	creator := formadorPrincipal(tenantID)
	formando := uuid.NewString()

	created, err := svc.Create(context.Background(), creator, CreateAcompanhamentoRequest{
		UserID:  formando,
		Date:    "2026-08-10",
		Content: "Conversa inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, creator.ID, created.FormadorID)

	otherFormador := formadorPrincipal(tenantID)
	newContent := "alterado"
	_, err = svc.Update(context.Background(), otherFormador, created.ID, UpdateAcompanhamentoRequest{Content: &newContent})
	assert.ErrorIs(t, err, acompanhamentoerrors.ErrNotOwner)

	err = svc.Delete(context.Background(), otherFormador, created.ID)
	assert.ErrorIs(t, err, acompanhamentoerrors.ErrNotOwner)

	admin := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleAdmin},
	}
	updated, err := svc.Update(context.Background(), admin, created.ID, UpdateAcompanhamentoRequest{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, "alterado", updated.Content)
}

func TestAcompanhamentoCreateRequiresFormador(t *testing.T) {
	repo := newFakeAcompanhamentoRepo()
	svc := NewService(repo, &acompRecorder{})

	plain := &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: uuid.NewString(),
		Roles:    []string{identity.RoleUser},
	}
	_, err := svc.Create(context.Background(), plain, CreateAcompanhamentoRequest{
		UserID:  uuid.NewString(),
		Date:    "2026-08-10",
		Content: "x",
	})
	assert.ErrorIs(t, err, acompanhamentoerrors.ErrFormadorOnly)
}

func TestAcompanhamentoListScopesByRole(t *testing.T) {
	repo := newFakeAcompanhamentoRepo()
	svc := NewService(repo, &acompRecorder{})

	tenantID := uuid.New()
	formadorA := formadorPrincipal(tenantID)
	formadorB := formadorPrincipal(tenantID)
	subject := uuid.New()

	seed := func(formadorID string, userID uuid.UUID) {
		a := &Acompanhamento{
			ID:         uuid.New(),
			TenantID:   tenantID,
			UserID:     userID,
			FormadorID: uuid.MustParse(formadorID),
		}
		repo.records[a.ID.String()] = a
	}
	seed(formadorA.ID, subject)
	seed(formadorB.ID, uuid.New())

	listed, err := svc.GetAll(context.Background(), formadorA, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, formadorA.ID, listed[0].FormadorID)

	asSubject := &identity.Principal{
		ID:       subject.String(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}
	listed, err = svc.GetAll(context.Background(), asSubject, ListFilter{FormadorID: formadorB.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, subject.String(), listed[0].UserID)
}

func TestAcompanhamentoSubjectCanReadButNotEdit(t *testing.T) {
	repo := newFakeAcompanhamentoRepo()
	svc := NewService(repo, &acompRecorder{})

	tenantID := uuid.New()
	creator := formadorPrincipal(tenantID)
	subject := uuid.New()

	a := &Acompanhamento{
		ID:         uuid.New(),
		TenantID:   tenantID,
		UserID:     subject,
		FormadorID: uuid.MustParse(creator.ID),
		Content:    "anotações",
	}
	repo.records[a.ID.String()] = a

	asSubject := &identity.Principal{
		ID:       subject.String(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}
	resp, err := svc.GetByID(context.Background(), asSubject, a.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "anotações", resp.Content)

	content := "editado"
	_, err = svc.Update(context.Background(), asSubject, a.ID.String(), UpdateAcompanhamentoRequest{Content: &content})
	assert.ErrorIs(t, err, acompanhamentoerrors.ErrNotOwner)
}

func TestAcompanhamentoExportPDF(t *testing.T) {
	repo := newFakeAcompanhamentoRepo()
	rec := &acompRecorder{}
	svc := NewService(repo, rec)

	tenantID := uuid.New()
	creator := formadorPrincipal(tenantID)

	created, err := svc.Create(context.Background(), creator, CreateAcompanhamentoRequest{
		UserID:   uuid.NewString(),
		Date:     "2026-08-10",
		Location: "Casa de formação",
		Content:  "Encontro mensal",
	})
	require.NoError(t, err)

	data, err := svc.ExportPDF(context.Background(), creator, created.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	last := rec.entries[len(rec.entries)-1]
	assert.Equal(t, audit.ActionExport, last.Action)
}
