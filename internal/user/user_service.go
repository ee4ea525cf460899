package user

import (
	"context"
	"errors"
	"time"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	"go-formacao/internal/shared/apperror"
	tenanterrors "go-formacao/internal/tenant/errors"
	usererrors "go-formacao/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StageChangeRecorder appends a journey entry when a user's formative
// stage moves. The journey service implements it; the local interface
// keeps the dependency one-way.
type StageChangeRecorder interface {
	RecordStageChange(ctx context.Context, tenantID, userID string, fromStageID, toStageID *string, changedByID, changedByName, notes string) error
}

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	LoadPrincipal(ctx context.Context, userID string) (*identity.Principal, error)
	CreateTenantOwner(ctx context.Context, tenantID, name, email, password string) (string, error)
	EnsureSuperadmin(ctx context.Context, email, password string) error

	GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]UserResponse, int64, error)
	GetFormadores(ctx context.Context, p *identity.Principal) ([]UserResponse, error)
	GetByID(ctx context.Context, p *identity.Principal, id string) (UserResponse, error)
	Create(ctx context.Context, p *identity.Principal, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, p *identity.Principal, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, p *identity.Principal, id string) error
	SetPhoto(ctx context.Context, p *identity.Principal, id, path string) (UserResponse, error)
}

type service struct {
	repo     Repository
	journeys StageChangeRecorder
	recorder audit.Recorder
	logger   *zap.Logger
}

func NewService(repo Repository, journeys StageChangeRecorder, recorder audit.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, journeys: journeys, recorder: recorder, logger: l}
}

func (s *service) LoadPrincipal(ctx context.Context, userID string) (*identity.Principal, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return toPrincipal(u), nil
}

func toPrincipal(u *User) *identity.Principal {
	return &identity.Principal{
		ID:               u.ID.String(),
		TenantID:         uuidPtrString(u.TenantID),
		Name:             u.Name,
		Email:            u.Email,
		Roles:            identity.NormalizeRoles(u.Role, u.Roles),
		Status:           u.Status,
		IsTenantOwner:    u.IsTenantOwner,
		LocationID:       uuidPtrString(u.LocationID),
		FunctionID:       uuidPtrString(u.FunctionID),
		FormativeStageID: uuidPtrString(u.FormativeStageID),
		FormadorID:       uuidPtrString(u.FormadorID),
	}
}

// CreateTenantOwner seeds the admin account a new tenant starts with.
func (s *service) CreateTenantOwner(ctx context.Context, tenantID, name, email, password string) (string, error) {
	tid, err := uuid.Parse(tenantID)
	if err != nil {
		return "", tenanterrors.ErrInvalidTenantID
	}

	taken, err := s.repo.EmailExists(ctx, tenantID, email, "")
	if err != nil {
		return "", err
	}
	if taken {
		return "", usererrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	u := &User{
		ID:            uuid.New(),
		TenantID:      &tid,
		Name:          name,
		Email:         email,
		Password:      string(hash),
		Role:          identity.RoleAdmin,
		Roles:         []string{identity.RoleAdmin},
		Status:        StatusActive,
		IsTenantOwner: true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return "", err
	}
	return u.ID.String(), nil
}

// EnsureSuperadmin seeds the platform operator account on first boot.
func (s *service) EnsureSuperadmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	count, err := s.repo.CountSuperadmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := &User{
		ID:       uuid.New(),
		Name:     "Superadmin",
		Email:    email,
		Password: string(hash),
		Role:     identity.RoleSuperadmin,
		Roles:    []string{identity.RoleSuperadmin},
		Status:   StatusActive,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return err
	}

	s.logger.Info("superadmin account created", zap.String("email", email))
	return nil
}

func (s *service) tenantOf(p *identity.Principal) (string, error) {
	if p.IsSuperadmin() {
		return "", nil
	}
	if p.TenantID == "" {
		return "", tenanterrors.ErrNoTenant
	}
	return p.TenantID, nil
}

func (s *service) GetAll(ctx context.Context, p *identity.Principal, f ListFilter) ([]UserResponse, int64, error) {
	tenantID, err := s.tenantOf(p)
	if err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.FindAll(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(users), total, nil
}

func (s *service) GetFormadores(ctx context.Context, p *identity.Principal) ([]UserResponse, error) {
	if p.TenantID == "" {
		return nil, tenanterrors.ErrNoTenant
	}
	users, err := s.repo.FindFormadores(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, p *identity.Principal, id string) (UserResponse, error) {
	u, err := s.findVisible(ctx, p, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

// findVisible loads a user the principal is allowed to see. A row in a
// foreign tenant answers as 404, never 403.
func (s *service) findVisible(ctx context.Context, p *identity.Principal, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	var u *User
	var err error
	if p.IsSuperadmin() {
		u, err = s.repo.FindByID(ctx, id)
	} else {
		if p.TenantID == "" {
			return nil, tenanterrors.ErrNoTenant
		}
		u, err = s.repo.FindByIDScoped(ctx, p.TenantID, id)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Create(ctx context.Context, p *identity.Principal, req CreateUserRequest) (UserResponse, error) {
	tenantID := p.TenantID
	if tenantID == "" {
		return UserResponse{}, tenanterrors.ErrNoTenant
	}

	limits, err := s.repo.TenantLimits(ctx, tenantID)
	if err != nil {
		return UserResponse{}, err
	}
	if limits.Status != "active" {
		return UserResponse{}, tenanterrors.ErrTenantInactive
	}
	if limits.MaxUsers != nil {
		count, err := s.repo.CountByTenant(ctx, tenantID)
		if err != nil {
			return UserResponse{}, err
		}
		if count >= int64(*limits.MaxUsers) {
			return UserResponse{}, tenanterrors.ErrUserLimitReached
		}
	}

	if taken, err := s.repo.EmailExists(ctx, tenantID, req.Email, ""); err != nil {
		return UserResponse{}, err
	} else if taken {
		return UserResponse{}, usererrors.ErrEmailTaken
	}
	if taken, err := s.repo.CPFExists(ctx, tenantID, req.CPF, ""); err != nil {
		return UserResponse{}, err
	} else if taken {
		return UserResponse{}, usererrors.ErrCPFTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{identity.RoleUser}
	}

	tid, err := uuid.Parse(tenantID)
	if err != nil {
		return UserResponse{}, tenanterrors.ErrInvalidTenantID
	}

	u := &User{
		ID:       uuid.New(),
		TenantID: &tid,
		Name:     req.Name,
		Email:    req.Email,
		CPF:      req.CPF,
		Password: string(hash),
		Role:     roles[0],
		Roles:    roles,
		Status:   StatusActive,
		Phone:    req.Phone,
	}
	if u.LocationID, err = parseUUIDPtr(req.LocationID); err != nil {
		return UserResponse{}, apperrInvalid("location_id")
	}
	if u.FunctionID, err = parseUUIDPtr(req.FunctionID); err != nil {
		return UserResponse{}, apperrInvalid("function_id")
	}
	if u.FormativeStageID, err = parseUUIDPtr(req.FormativeStageID); err != nil {
		return UserResponse{}, apperrInvalid("formative_stage_id")
	}
	if u.FormadorID, err = parseUUIDPtr(req.FormadorID); err != nil {
		return UserResponse{}, apperrInvalid("formador_id")
	}
	if req.Birthdate != nil && *req.Birthdate != "" {
		t, err := time.Parse("2006-01-02", *req.Birthdate)
		if err != nil {
			return UserResponse{}, apperrInvalid("birthdate")
		}
		u.Birthdate = &t
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		TenantID:     tenantID,
		UserID:       p.ID,
		UserName:     p.Name,
		Action:       audit.ActionCreate,
		ResourceType: "user",
		ResourceID:   u.ID.String(),
		Details:      "Usuário " + u.Name + " criado",
	}); err != nil {
		return UserResponse{}, err
	}

	s.logger.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("tenant_id", tenantID),
	)
	return mapToResponse(*u), nil
}

// selfEditable lists what a non-admin may change on their own profile.
func selfEditableOnly(req UpdateUserRequest) bool {
	return req.Roles == nil &&
		req.Status == nil &&
		req.LocationID == nil &&
		req.FunctionID == nil &&
		req.FormativeStageID == nil &&
		req.FormadorID == nil
}

func (s *service) Update(ctx context.Context, p *identity.Principal, id string, req UpdateUserRequest) (UserResponse, error) {
	u, err := s.findVisible(ctx, p, id)
	if err != nil {
		return UserResponse{}, err
	}

	isSelf := p.ID == id
	if !p.IsAdmin() {
		if !isSelf {
			return UserResponse{}, usererrors.ErrNotYourProfile
		}
		if !selfEditableOnly(req) {
			return UserResponse{}, usererrors.ErrForbiddenFields
		}
	}

	tenantID := uuidPtrString(u.TenantID)
	prevStage := u.FormativeStageID

	if req.Email != nil && *req.Email != u.Email {
		if taken, err := s.repo.EmailExists(ctx, tenantID, *req.Email, id); err != nil {
			return UserResponse{}, err
		} else if taken {
			return UserResponse{}, usererrors.ErrEmailTaken
		}
		u.Email = *req.Email
	}
	if req.CPF != nil && *req.CPF != u.CPF {
		if taken, err := s.repo.CPFExists(ctx, tenantID, *req.CPF, id); err != nil {
			return UserResponse{}, err
		} else if taken {
			return UserResponse{}, usererrors.ErrCPFTaken
		}
		u.CPF = *req.CPF
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return UserResponse{}, err
		}
		u.Password = string(hash)
	}
	if req.Birthdate != nil && *req.Birthdate != "" {
		t, err := time.Parse("2006-01-02", *req.Birthdate)
		if err != nil {
			return UserResponse{}, apperrInvalid("birthdate")
		}
		u.Birthdate = &t
	}

	if req.Roles != nil {
		if u.IsTenantOwner && !containsRole(*req.Roles, identity.RoleAdmin) {
			return UserResponse{}, usererrors.ErrOwnerProtected
		}
		roles := *req.Roles
		if len(roles) == 0 {
			roles = []string{identity.RoleUser}
		}
		u.Role = roles[0]
		u.Roles = roles
	}
	if req.Status != nil {
		if u.IsTenantOwner && *req.Status != StatusActive {
			return UserResponse{}, usererrors.ErrOwnerProtected
		}
		u.Status = *req.Status
	}
	if req.LocationID != nil {
		if u.LocationID, err = parseUUIDPtr(req.LocationID); err != nil {
			return UserResponse{}, apperrInvalid("location_id")
		}
	}
	if req.FunctionID != nil {
		if u.FunctionID, err = parseUUIDPtr(req.FunctionID); err != nil {
			return UserResponse{}, apperrInvalid("function_id")
		}
	}
	if req.FormadorID != nil {
		if u.FormadorID, err = parseUUIDPtr(req.FormadorID); err != nil {
			return UserResponse{}, apperrInvalid("formador_id")
		}
	}

	stageChanged := false
	if req.FormativeStageID != nil {
		newStage, err := parseUUIDPtr(req.FormativeStageID)
		if err != nil {
			return UserResponse{}, apperrInvalid("formative_stage_id")
		}
		if !uuidPtrEqual(prevStage, newStage) {
			u.FormativeStageID = newStage
			stageChanged = true
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	// A stage move leaves a trail. Participations are untouched, the
	// journey log is the only side effect.
	if stageChanged {
		if err := s.journeys.RecordStageChange(
			ctx,
			tenantID,
			id,
			uuidPtrStringPtr(prevStage),
			uuidPtrStringPtr(u.FormativeStageID),
			p.ID,
			p.Name,
			"Transição automática registrada na atualização do usuário",
		); err != nil {
			s.logger.Error("record stage change failed", zap.String("user_id", id), zap.Error(err))
			return UserResponse{}, err
		}
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		TenantID:     tenantID,
		UserID:       p.ID,
		UserName:     p.Name,
		Action:       audit.ActionUpdate,
		ResourceType: "user",
		ResourceID:   id,
	}); err != nil {
		return UserResponse{}, err
	}

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, p *identity.Principal, id string) error {
	if p.ID == id {
		return usererrors.ErrSelfDelete
	}

	u, err := s.findVisible(ctx, p, id)
	if err != nil {
		return err
	}
	if u.IsTenantOwner {
		return usererrors.ErrOwnerProtected
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	return s.recorder.Record(ctx, audit.Entry{
		TenantID:     uuidPtrString(u.TenantID),
		UserID:       p.ID,
		UserName:     p.Name,
		Action:       audit.ActionDelete,
		ResourceType: "user",
		ResourceID:   id,
		Details:      "Usuário " + u.Name + " removido",
	})
}

func (s *service) SetPhoto(ctx context.Context, p *identity.Principal, id, path string) (UserResponse, error) {
	u, err := s.findVisible(ctx, p, id)
	if err != nil {
		return UserResponse{}, err
	}
	if !p.IsAdmin() && p.ID != id {
		return UserResponse{}, usererrors.ErrNotYourProfile
	}

	u.PhotoPath = path
	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, err
	}

	if err := s.recorder.Record(ctx, audit.Entry{
		TenantID:     uuidPtrString(u.TenantID),
		UserID:       p.ID,
		UserName:     p.Name,
		Action:       audit.ActionUpload,
		ResourceType: "user_photo",
		ResourceID:   id,
	}); err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func parseUUIDPtr(v *string) (*uuid.UUID, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*v)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func uuidPtrString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func uuidPtrStringPtr(v *uuid.UUID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func apperrInvalid(field string) error {
	return apperror.InvalidField(field)
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:               u.ID.String(),
		TenantID:         uuidPtrString(u.TenantID),
		Name:             u.Name,
		Email:            u.Email,
		CPF:              u.CPF,
		Roles:            identity.NormalizeRoles(u.Role, u.Roles),
		Status:           u.Status,
		IsTenantOwner:    u.IsTenantOwner,
		LocationID:       uuidPtrString(u.LocationID),
		FunctionID:       uuidPtrString(u.FunctionID),
		FormativeStageID: uuidPtrString(u.FormativeStageID),
		FormadorID:       uuidPtrString(u.FormadorID),
		PhotoPath:        u.PhotoPath,
		Phone:            u.Phone,
		CreatedAt:        u.CreatedAt.Format(time.RFC3339),
	}
	if u.Birthdate != nil {
		resp.Birthdate = u.Birthdate.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
