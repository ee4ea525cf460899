package document

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	documenterrors "go-formacao/internal/document/errors"
	"go-formacao/internal/identity"
	"go-formacao/internal/permission"
	"go-formacao/internal/shared/apperror"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]DocumentResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (DocumentResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateDocumentRequest) (DocumentResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateDocumentRequest) (DocumentResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) (removedFile string, err error)
	AttachFile(ctx context.Context, p *identity.Principal, id string, meta FileMeta) (DocumentResponse, error)
	Download(ctx context.Context, p *identity.Principal, id string) (*Document, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func tenantFor(p *identity.Principal) string {
	if p.IsSuperadmin() {
		return ""
	}
	return p.TenantID
}

// GetAll filters by the permission lists after the tenant query, the
// lists live on the row and the caller's memberships on the principal.
func (s *service) GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]DocumentResponse, error) {
	docs, err := s.repo.FindAll(ctx, tenantFor(p), f)
	if err != nil {
		return nil, err
	}

	visible := make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		if s.canAccess(p, &d) {
			visible = append(visible, mapToResponse(d))
		}
	}
	return visible, nil
}

// GetByID counts the read, every permitted fetch bumps the view counter.
func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (DocumentResponse, error) {
	d, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return DocumentResponse{}, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		return DocumentResponse{}, err
	}
	d.Views++

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     d.TenantID.String(),
		Action:       audit.ActionView,
		ResourceType: "documents",
		ResourceID:   d.ID.String(),
		Details:      "Documento " + d.Title + " visualizado",
	}); err != nil {
		return DocumentResponse{}, err
	}

	return mapToResponse(*d), nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateDocumentRequest) (DocumentResponse, error) {
	if p.TenantID == "" {
		return DocumentResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return DocumentResponse{}, tenanterrors.ErrInvalidTenantID
	}
	creatorID, err := uuid.Parse(p.ID)
	if err != nil {
		return DocumentResponse{}, documenterrors.ErrInvalidDocumentID
	}

	d := &Document{
		ID:          uuid.New(),
		TenantID:    tid,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		CreatedBy:   creatorID,
		Set: permission.Set{
			AllowedUserIDs:     req.AllowedUsers,
			AllowedLocationIDs: req.AllowedLocs,
			AllowedFunctionIDs: req.AllowedFuncs,
			AllowedStageIDs:    req.AllowedStages,
		},
	}
	if req.SubcategoryID != "" {
		scID, err := uuid.Parse(req.SubcategoryID)
		if err != nil {
			return DocumentResponse{}, apperror.InvalidField("subcategory_id")
		}
		d.SubcategoryID = &scID
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return DocumentResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "documents",
		ResourceID:   d.ID.String(),
		Details:      "Documento " + d.Title + " criado",
	}); err != nil {
		return DocumentResponse{}, err
	}

	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateDocumentRequest) (DocumentResponse, error) {
	d, err := s.findVisible(ctx, p, id)
	if err != nil {
		return DocumentResponse{}, err
	}

	if req.Title != nil {
		d.Title = *req.Title
	}
	if req.Description != nil {
		d.Description = *req.Description
	}
	if req.SubcategoryID != nil {
		if *req.SubcategoryID == "" {
			d.SubcategoryID = nil
		} else {
			scID, err := uuid.Parse(*req.SubcategoryID)
			if err != nil {
				return DocumentResponse{}, apperror.InvalidField("subcategory_id")
			}
			d.SubcategoryID = &scID
		}
	}
	if req.IsPublic != nil {
		d.IsPublic = *req.IsPublic
	}
	if req.AllowedUsers != nil {
		d.AllowedUserIDs = *req.AllowedUsers
	}
	if req.AllowedLocs != nil {
		d.AllowedLocationIDs = *req.AllowedLocs
	}
	if req.AllowedFuncs != nil {
		d.AllowedFunctionIDs = *req.AllowedFuncs
	}
	if req.AllowedStages != nil {
		d.AllowedStageIDs = *req.AllowedStages
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return DocumentResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     d.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "documents",
		ResourceID:   d.ID.String(),
		Details:      "Documento " + d.Title + " atualizado",
	}); err != nil {
		return DocumentResponse{}, err
	}

	return mapToResponse(*d), nil
}

// Delete returns the stored file path so the handler can remove the
// blob after the row is gone.
func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) (string, error) {
	d, err := s.findVisible(ctx, p, id)
	if err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, tenantFor(p), id); err != nil {
		return "", err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     d.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "documents",
		ResourceID:   id,
		Details:      "Documento " + d.Title + " removido",
	}); err != nil {
		return "", err
	}

	return d.FilePath, nil
}

func (s *service) AttachFile(ctx context.Context, p *identity.Principal, id string, meta FileMeta) (DocumentResponse, error) {
	d, err := s.findVisible(ctx, p, id)
	if err != nil {
		return DocumentResponse{}, err
	}

	d.FilePath = meta.Path
	d.FileName = meta.Name
	d.FileSize = meta.Size
	d.MimeType = meta.MimeType

	if err := s.repo.Update(ctx, d); err != nil {
		return DocumentResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     d.TenantID.String(),
		Action:       audit.ActionUpload,
		ResourceType: "documents",
		ResourceID:   d.ID.String(),
		Details:      "Arquivo " + meta.Name + " enviado",
	}); err != nil {
		return DocumentResponse{}, err
	}

	return mapToResponse(*d), nil
}

func (s *service) Download(ctx context.Context, p *identity.Principal, id string) (*Document, error) {
	d, err := s.findAccessible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if d.FilePath == "" {
		return nil, documenterrors.ErrNoFileAttached
	}

	if err := s.repo.IncrementDownloads(ctx, id); err != nil {
		return nil, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     d.TenantID.String(),
		Action:       audit.ActionDownload,
		ResourceType: "documents",
		ResourceID:   d.ID.String(),
		Details:      "Documento " + d.Title + " baixado",
	}); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *service) canAccess(p *identity.Principal, d *Document) bool {
	if d.IsPublic {
		return true
	}
	return permission.Check(p, &d.Set)
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, documenterrors.ErrInvalidDocumentID
	}
	d, err := s.repo.FindByID(ctx, tenantFor(p), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documenterrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *service) findAccessible(ctx context.Context, p *identity.Principal, id string) (*Document, error) {
	d, err := s.findVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.canAccess(p, d) {
		return nil, documenterrors.ErrContentRestricted
	}
	return d, nil
}

func mapToResponse(d Document) DocumentResponse {
	resp := DocumentResponse{
		ID:          d.ID.String(),
		TenantID:    d.TenantID.String(),
		Title:       d.Title,
		Description: d.Description,
		FileName:    d.FileName,
		FileSize:    d.FileSize,
		MimeType:    d.MimeType,
		IsPublic:    d.IsPublic,
		Views:       d.Views,
		Downloads:   d.Downloads,
		Permissions: d.Set,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
	if d.SubcategoryID != nil {
		resp.SubcategoryID = d.SubcategoryID.String()
	}
	return resp
}
