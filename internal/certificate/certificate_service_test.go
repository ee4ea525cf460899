package certificate

import (
	"context"
	"testing"

	"go-formacao/internal/audit"
	certificateerrors "go-formacao/internal/certificate/errors"
	"go-formacao/internal/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCertificateRepo struct {
	certs     map[string]*Certificate
	formadors map[string]string // userID -> formadorID
}

func newFakeCertificateRepo() *fakeCertificateRepo {
	return &fakeCertificateRepo{
		certs:     make(map[string]*Certificate),
		formadors: make(map[string]string),
	}
}

func (f *fakeCertificateRepo) Create(_ context.Context, c *Certificate) error {
	f.certs[c.ID.String()] = c
	return nil
}

func (f *fakeCertificateRepo) FindAll(_ context.Context, tenantID string, fl ListFilter) ([]Certificate, error) {
	var out []Certificate
	for _, c := range f.certs {
		if tenantID != "" && c.TenantID.String() != tenantID {
			continue
		}
		if fl.UserID != "" && c.UserID.String() != fl.UserID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCertificateRepo) FindVisibleToFormador(_ context.Context, tenantID, formadorID string, fl ListFilter) ([]Certificate, error) {
	var out []Certificate
	for _, c := range f.certs {
		if c.TenantID.String() != tenantID {
			continue
		}
		owner := c.UserID.String()
		if owner != formadorID && f.formadors[owner] != formadorID {
			continue
		}
		if fl.UserID != "" && owner != fl.UserID {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCertificateRepo) FindByUser(_ context.Context, tenantID, userID string) ([]Certificate, error) {
	var out []Certificate
	for _, c := range f.certs {
		if tenantID != "" && c.TenantID.String() != tenantID {
			continue
		}
		if c.UserID.String() == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCertificateRepo) FindByID(_ context.Context, tenantID, id string) (*Certificate, error) {
	c, ok := f.certs[id]
	if !ok || (tenantID != "" && c.TenantID.String() != tenantID) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCertificateRepo) Update(_ context.Context, c *Certificate) error {
	f.certs[c.ID.String()] = c
	return nil
}

func (f *fakeCertificateRepo) Delete(_ context.Context, _, id string) error {
	delete(f.certs, id)
	return nil
}

func (f *fakeCertificateRepo) UserFormadorID(_ context.Context, userID string) (string, error) {
	return f.formadors[userID], nil
}

type certRecorder struct {
	entries []audit.Entry
}

func (r *certRecorder) Record(_ context.Context, e audit.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func seedCertificate(repo *fakeCertificateRepo, tenantID, ownerID uuid.UUID, title string) *Certificate {
	c := &Certificate{
		ID:       uuid.New(),
		TenantID: tenantID,
		UserID:   ownerID,
		Title:    title,
		FilePath: "certificates/" + title + ".pdf",
	}
	repo.certs[c.ID.String()] = c
	return c
}

func principalWith(tenantID uuid.UUID, role string) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Name:     "Pessoa",
		Roles:    []string{role},
	}
}

func TestCertificateVisibility(t *testing.T) {
	repo := newFakeCertificateRepo()
	svc := NewService(repo, &certRecorder{})

	tenantID := uuid.New()
	owner := principalWith(tenantID, identity.RoleUser)
	ownerID := uuid.MustParse(owner.ID)
	cert := seedCertificate(repo, tenantID, ownerID, "crisma")

	t.Run("owner sees own certificate", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), owner, cert.ID.String())
		require.NoError(t, err)
		assert.Equal(t, "crisma", resp.Title)
	})

	t.Run("unrelated user is refused", func(t *testing.T) {
		other := principalWith(tenantID, identity.RoleUser)
		_, err := svc.GetByID(context.Background(), other, cert.ID.String())
		assert.ErrorIs(t, err, certificateerrors.ErrCertificateForbidden)
	})

	t.Run("formador of the owner sees it", func(t *testing.T) {
		formador := principalWith(tenantID, identity.RoleFormador)
		repo.formadors[owner.ID] = formador.ID

		resp, err := svc.GetByID(context.Background(), formador, cert.ID.String())
		require.NoError(t, err)
		assert.Equal(t, cert.ID.String(), resp.ID)
	})

	t.Run("formador of someone else is refused", func(t *testing.T) {
		stranger := principalWith(tenantID, identity.RoleFormador)
		_, err := svc.GetByID(context.Background(), stranger, cert.ID.String())
		assert.ErrorIs(t, err, certificateerrors.ErrCertificateForbidden)
	})

	t.Run("admin sees everything in the tenant", func(t *testing.T) {
		admin := principalWith(tenantID, identity.RoleAdmin)
		resp, err := svc.GetAll(context.Background(), admin, ListFilter{})
		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})
}

func TestCertificateListByRole(t *testing.T) {
	repo := newFakeCertificateRepo()
	svc := NewService(repo, &certRecorder{})

	tenantID := uuid.New()
	formador := principalWith(tenantID, identity.RoleFormador)
	formando := principalWith(tenantID, identity.RoleUser)
	outsider := principalWith(tenantID, identity.RoleUser)
	repo.formadors[formando.ID] = formador.ID

	seedCertificate(repo, tenantID, uuid.MustParse(formando.ID), "batismo")
	seedCertificate(repo, tenantID, uuid.MustParse(outsider.ID), "curso")

	resp, err := svc.GetAll(context.Background(), formador, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, formando.ID, resp[0].UserID)

	resp, err = svc.GetAll(context.Background(), outsider, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "curso", resp[0].Title)
}

func TestCertificateCreateForAnotherUser(t *testing.T) {
	repo := newFakeCertificateRepo()
	rec := &certRecorder{}
	svc := NewService(repo, rec)

	tenantID := uuid.New()
	formando := principalWith(tenantID, identity.RoleUser)
	plain := principalWith(tenantID, identity.RoleUser)

	_, err := svc.Create(context.Background(), plain, formando.ID, "curso", "", "", FileMeta{Path: "certificates/x.pdf"})
	assert.ErrorIs(t, err, certificateerrors.ErrCertificateForbidden)

	admin := principalWith(tenantID, identity.RoleAdmin)
	resp, err := svc.Create(context.Background(), admin, formando.ID, "curso", "", "2026-06-01", FileMeta{Path: "certificates/x.pdf"})
	require.NoError(t, err)
	assert.Equal(t, formando.ID, resp.UserID)
	assert.Equal(t, "2026-06-01", resp.IssuedAt)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionUpload, rec.entries[0].Action)
}

func TestCertificateDeleteReturnsFilePath(t *testing.T) {
	repo := newFakeCertificateRepo()
	svc := NewService(repo, &certRecorder{})

	tenantID := uuid.New()
	owner := principalWith(tenantID, identity.RoleUser)
	cert := seedCertificate(repo, tenantID, uuid.MustParse(owner.ID), "antigo")

	path, err := svc.Delete(context.Background(), owner, cert.ID.String())
	require.NoError(t, err)
	assert.Equal(t, cert.FilePath, path)
	assert.Empty(t, repo.certs)
}
