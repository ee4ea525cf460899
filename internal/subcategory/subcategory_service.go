package subcategory

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	subcategoryerrors "go-formacao/internal/subcategory/errors"
	"go-formacao/internal/tenant"
	tenanterrors "go-formacao/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=subcategory_service.go -destination=mock/subcategory_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, p *identity.Principal) ([]SubcategoryResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (SubcategoryResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateSubcategoryRequest) (SubcategoryResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateSubcategoryRequest) (SubcategoryResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("subcategory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("subcategory.service")
	}
	return &service{repo: repo, recorder: recorder, logger: l}
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal) ([]SubcategoryResponse, error) {
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	subcategories, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(subcategories), nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (SubcategoryResponse, error) {
	sc, err := s.findVisible(ctx, p, id)
	if err != nil {
		return SubcategoryResponse{}, err
	}
	return mapToResponse(*sc), nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateSubcategoryRequest) (SubcategoryResponse, error) {
	if p.TenantID == "" {
		return SubcategoryResponse{}, tenanterrors.ErrNoTenant
	}
	tid, err := uuid.Parse(p.TenantID)
	if err != nil {
		return SubcategoryResponse{}, tenanterrors.ErrInvalidTenantID
	}

	sc := &Subcategory{
		ID:          uuid.New(),
		TenantID:    tid,
		Name:        req.Name,
		Description: req.Description,
		Order:       req.Order,
	}
	if err := s.repo.Create(ctx, sc); err != nil {
		return SubcategoryResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     p.TenantID,
		Action:       audit.ActionCreate,
		ResourceType: "subcategories",
		ResourceID:   sc.ID.String(),
		Details:      "Subcategoria " + sc.Name + " criada",
	}); err != nil {
		return SubcategoryResponse{}, err
	}

	return mapToResponse(*sc), nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateSubcategoryRequest) (SubcategoryResponse, error) {
	sc, err := s.findVisible(ctx, p, id)
	if err != nil {
		return SubcategoryResponse{}, err
	}

	if req.Name != nil {
		sc.Name = *req.Name
	}
	if req.Description != nil {
		sc.Description = *req.Description
	}
	if req.Order != nil {
		sc.Order = *req.Order
	}

	if err := s.repo.Update(ctx, sc); err != nil {
		return SubcategoryResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     sc.TenantID.String(),
		Action:       audit.ActionUpdate,
		ResourceType: "subcategories",
		ResourceID:   sc.ID.String(),
		Details:      "Subcategoria " + sc.Name + " atualizada",
	}); err != nil {
		return SubcategoryResponse{}, err
	}

	return mapToResponse(*sc), nil
}

// Delete refuses while documents or videos still point at the
// subcategory, content must be moved or removed first.
func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) error {
	sc, err := s.findVisible(ctx, p, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountContent(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return subcategoryerrors.ErrSubcategoryInUse
	}

	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, scope, id); err != nil {
		return err
	}

	return s.recorder.Record(ctx, audit.Entry{
		UserID:       p.ID,
		UserName:     p.Name,
		TenantID:     sc.TenantID.String(),
		Action:       audit.ActionDelete,
		ResourceType: "subcategories",
		ResourceID:   id,
		Details:      "Subcategoria " + sc.Name + " removida",
	})
}

func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*Subcategory, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, subcategoryerrors.ErrInvalidSubcategoryID
	}
	scope, err := tenant.ScopeFor(p)
	if err != nil {
		return nil, err
	}
	sc, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, subcategoryerrors.ErrSubcategoryNotFound
		}
		return nil, err
	}
	return sc, nil
}

func mapToResponse(sc Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:          sc.ID.String(),
		TenantID:    sc.TenantID.String(),
		Name:        sc.Name,
		Description: sc.Description,
		Order:       sc.Order,
		CreatedAt:   sc.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(subcategories []Subcategory) []SubcategoryResponse {
	res := make([]SubcategoryResponse, len(subcategories))
	for i, sc := range subcategories {
		res[i] = mapToResponse(sc)
	}
	return res
}
