package certificate

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	certificateerrors "go-formacao/internal/certificate/errors"
	"go-formacao/internal/identity"
	"go-formacao/internal/shared/apperror"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=certificate_service.go -destination=mock/certificate_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]CertificateResponse, error)
	GetByUser(ctx context.Context, p *identity.Principal, userID string) ([]CertificateResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (CertificateResponse, error)
	Create(ctx context.Context, p *identity.Principal, ownerID, title, description, issuedAt string, meta FileMeta) (CertificateResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateCertificateRequest) (CertificateResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) (removedFile string, err error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("certificate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("certificate.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func tenantFor(p *identity.Principal) string {
	if p.IsSuperadmin() {
		return ""
	}
	return p.TenantID
}

// GetAll narrows by role: admins see the tenant, formadores see their own
// plus their formandos', everyone else only their own.
func (s *service) GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]CertificateResponse, error) {
	var certs []Certificate
	var err error
	switch {
	case p.IsAdmin():
		certs, err = s.repo.FindAll(ctx, tenantFor(p), f)
	case p.IsFormador():
		certs, err = s.repo.FindVisibleToFormador(ctx, p.TenantID, p.ID, f)
	default:
		certs, err = s.repo.FindByUser(ctx, p.TenantID, p.ID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(certs), nil
}

func (s *service) GetByUser(ctx context.Context, p *identity.Principal, userID string) ([]CertificateResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, certificateerrors.ErrInvalidCertificateID
	}
	if err := s.canViewOwner(ctx, p, userID); err != nil {
		return nil, err
	}

	certs, err := s.repo.FindByUser(ctx, tenantFor(p), userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(certs), nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (CertificateResponse, error) {
	c, err := s.findVisible(ctx, p, id)
	if err != nil {
		return CertificateResponse{}, err
	}
	if err := s.canViewOwner(ctx, p, c.UserID.String()); err != nil {
		return CertificateResponse{}, err
	}
	return mapToResponse(*c), nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, ownerID, title, description, issuedAt string, meta FileMeta) (CertificateResponse, error) {
	if p.TenantID == "" {
		return CertificateResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return CertificateResponse{}, tenanterrors.ErrInvalidTenantID
	}
	creatorID, err := uuid.Parse(p.ID)
	if err != nil {
		return CertificateResponse{}, certificateerrors.ErrInvalidCertificateID
	}

	// missing owner means the caller uploads for themselves
	owner := creatorID
	if ownerID != "" && ownerID != p.ID {
		parsed, err := uuid.Parse(ownerID)
		if err != nil {
			return CertificateResponse{}, apperror.InvalidField("user_id")
		}
		if err := s.canManageOwner(ctx, p, ownerID); err != nil {
			return CertificateResponse{}, err
		}
		owner = parsed
	}

	c := &Certificate{
		ID:          uuid.New(),
		TenantID:    tid,
		UserID:      owner,
		Title:       title,
		Description: description,
		FilePath:    meta.Path,
		FileName:    meta.Name,
		FileSize:    meta.Size,
		MimeType:    meta.MimeType,
		CreatedBy:   creatorID,
	}
	if issuedAt != "" {
		t, err := time.Parse("2006-01-02", issuedAt)
		if err != nil {
			return CertificateResponse{}, apperror.InvalidField("issued_at")
		}
		c.IssuedAt = &t
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return CertificateResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionUpload,
		ResourceType: "certificates",
		ResourceID:   c.ID.String(),
		Details:      "Certificado " + c.Title + " enviado",
	}); err != nil {
		return CertificateResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateCertificateRequest) (CertificateResponse, error) {
	c, err := s.findVisible(ctx, p, id)
	if err != nil {
		return CertificateResponse{}, err
	}
	if err := s.canManageOwner(ctx, p, c.UserID.String()); err != nil {
		return CertificateResponse{}, err
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.IssuedAt != nil {
		if *req.IssuedAt == "" {
			c.IssuedAt = nil
		} else {
			t, err := time.Parse("2006-01-02", *req.IssuedAt)
			if err != nil {
				return CertificateResponse{}, apperror.InvalidField("issued_at")
			}
			c.IssuedAt = &t
		}
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return CertificateResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     c.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "certificates",
		ResourceID:   c.ID.String(),
		Details:      "Certificado " + c.Title + " atualizado",
	}); err != nil {
		return CertificateResponse{}, err
	}

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) (string, error) {
	c, err := s.findVisible(ctx, p, id)
	if err != nil {
		return "", err
	}
	if err := s.canManageOwner(ctx, p, c.UserID.String()); err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, tenantFor(p), id); err != nil {
		return "", err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     c.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "certificates",
		ResourceID:   id,
		Details:      "Certificado " + c.Title + " removido",
	}); err != nil {
		return "", err
	}

	return c.FilePath, nil
}

// canViewOwner allows the owner, admins and the owner's formador.
func (s *service) canViewOwner(ctx context.Context, p *identity.Principal, ownerID string) error {
	if ownerID == p.ID || p.IsAdmin() {
		return nil
	}
	if p.IsFormador() {
		formadorID, err := s.repo.UserFormadorID(ctx, ownerID)
		if err != nil {
			return err
		}
		if formadorID == p.ID {
			return nil
		}
	}
	return certificateerrors.ErrCertificateForbidden
}

// canManageOwner is the write-side rule, identical to viewing here.
func (s *service) canManageOwner(ctx context.Context, p *identity.Principal, ownerID string) error {
	return s.canViewOwner(ctx, p, ownerID)
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*Certificate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, certificateerrors.ErrInvalidCertificateID
	}
	c, err := s.repo.FindByID(ctx, tenantFor(p), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, certificateerrors.ErrCertificateNotFound
		}
		return nil, err
	}
	return c, nil
}

func mapToResponse(c Certificate) CertificateResponse {
	resp := CertificateResponse{
		ID:          c.ID.String(),
		TenantID:    c.TenantID.String(),
		UserID:      c.UserID.String(),
		Title:       c.Title,
		Description: c.Description,
		FileName:    c.FileName,
		FileSize:    c.FileSize,
		MimeType:    c.MimeType,
		FilePath:    c.FilePath,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
	if c.IssuedAt != nil {
		resp.IssuedAt = c.IssuedAt.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(certs []Certificate) []CertificateResponse {
	res := make([]CertificateResponse, len(certs))
	for i, c := range certs {
		res[i] = mapToResponse(c)
	}
	return res
}
