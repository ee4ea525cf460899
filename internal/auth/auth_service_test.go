package auth

import (
	"context"
	"testing"
	"time"

	"go-formacao/internal/audit"
	autherrors "go-formacao/internal/auth/errors"
	"go-formacao/internal/config"
	"go-formacao/internal/identity"
	"go-formacao/internal/tenant"
	tenanterrors "go-formacao/internal/tenant/errors"
	"go-formacao/internal/user"
	usererrors "go-formacao/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeAuthRepo struct {
	users   map[uuid.UUID]*user.User
	tenants map[string]*tenant.Tenant
	resets  map[string]*PasswordReset
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		users:   make(map[uuid.UUID]*user.User),
		tenants: make(map[string]*tenant.Tenant),
		resets:  make(map[string]*PasswordReset),
	}
}

func (f *fakeAuthRepo) FindUserByEmail(_ context.Context, tenantID *uuid.UUID, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email != email {
			continue
		}
		if tenantID == nil && u.TenantID == nil {
			cp := *u
			return &cp, nil
		}
		if tenantID != nil && u.TenantID != nil && *u.TenantID == *tenantID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) FindAnyUserByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) FindUserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeAuthRepo) CreateUser(_ context.Context, u *user.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeAuthRepo) EmailExists(_ context.Context, tenantID uuid.UUID, email string) (bool, error) {
	for _, u := range f.users {
		if u.TenantID != nil && *u.TenantID == tenantID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAuthRepo) CPFExists(_ context.Context, tenantID uuid.UUID, cpf string) (bool, error) {
	for _, u := range f.users {
		if u.TenantID != nil && *u.TenantID == tenantID && u.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAuthRepo) CountUsers(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.TenantID != nil && *u.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAuthRepo) FindTenantBySlug(_ context.Context, slug string) (*tenant.Tenant, error) {
	t, ok := f.tenants[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeAuthRepo) CreatePasswordReset(_ context.Context, r *PasswordReset) error {
	cp := *r
	f.resets[r.Token] = &cp
	return nil
}

func (f *fakeAuthRepo) FindActiveReset(_ context.Context, token string) (*PasswordReset, error) {
	r, ok := f.resets[token]
	if !ok || r.Used || time.Now().After(r.ExpiresAt) {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeAuthRepo) MarkResetUsed(_ context.Context, id uuid.UUID) error {
	for _, r := range f.resets {
		if r.ID == id {
			r.Used = true
		}
	}
	return nil
}

func (f *fakeAuthRepo) UpdatePassword(_ context.Context, userID uuid.UUID, hash string) error {
	if u, ok := f.users[userID]; ok {
		u.Password = hash
	}
	return nil
}

type fakeRecorder struct {
	entries []audit.Entry
}

func (f *fakeRecorder) Record(_ context.Context, e audit.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

type fakeMailer struct {
	sentTo  []string
	lastURL string
	fail    error
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, toEmail, _, resetURL string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sentTo = append(f.sentTo, toEmail)
	f.lastURL = resetURL
	return nil
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:        "test-secret",
		AccessTokenHours: 1,
		RefreshTokenDays: 1,
		ResetTokenHours:  1,
		FrontendURL:      "http://localhost:3001",
	}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func seedTenant(repo *fakeAuthRepo, slug, status string, maxUsers *int) *tenant.Tenant {
	t := &tenant.Tenant{
		ID:       uuid.New(),
		Name:     slug,
		Slug:     slug,
		Status:   status,
		MaxUsers: maxUsers,
	}
	repo.tenants[slug] = t
	return t
}

func seedUser(repo *fakeAuthRepo, tenantID *uuid.UUID, email, passwordHash, status string, roles []string) *user.User {
	u := &user.User{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "Maria Silva",
		Email:    email,
		Password: passwordHash,
		Roles:    roles,
		Status:   status,
	}
	repo.users[u.ID] = u
	return u
}

func TestLoginWithTenantSlug(t *testing.T) {
	repo := newFakeAuthRepo()
	rec := &fakeRecorder{}
	tn := seedTenant(repo, "diocese-sp", tenant.StatusActive, nil)
	u := seedUser(repo, &tn.ID, "maria@example.com", mustHash(t, "secret123"), user.StatusActive, []string{identity.RoleUser})

	svc := NewService(repo, &fakeMailer{}, rec, testConfig(), zap.NewNop())

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:      "maria@example.com",
		Password:   "secret123",
		TenantSlug: "diocese-sp",
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), pair.User.ID)
	assert.Equal(t, tn.ID.String(), pair.User.TenantID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	token, err := jwt.Parse(pair.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "access", claims["type"])
	assert.Equal(t, u.ID.String(), claims["user_id"])
	assert.Equal(t, tn.ID.String(), claims["tenant_id"])

	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionLogin, rec.entries[0].Action)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	tn := seedTenant(repo, "diocese-sp", tenant.StatusActive, nil)
	seedUser(repo, &tn.ID, "maria@example.com", mustHash(t, "secret123"), user.StatusActive, []string{identity.RoleUser})

	svc := NewService(repo, &fakeMailer{}, &fakeRecorder{}, testConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:      "maria@example.com",
		Password:   "wrong",
		TenantSlug: "diocese-sp",
	})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLoginWithoutSlugOnlyMatchesPlatformAccounts(t *testing.T) {
	repo := newFakeAuthRepo()
	tn := seedTenant(repo, "diocese-sp", tenant.StatusActive, nil)
	seedUser(repo, &tn.ID, "maria@example.com", mustHash(t, "secret123"), user.StatusActive, []string{identity.RoleAdmin})
	super := seedUser(repo, nil, "root@example.com", mustHash(t, "rootpass1"), user.StatusActive, []string{identity.RoleSuperadmin})

	svc := NewService(repo, &fakeMailer{}, &fakeRecorder{}, testConfig(), zap.NewNop())

	// tenant user without a slug must not resolve
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "maria@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:    "root@example.com",
		Password: "rootpass1",
	})
	require.NoError(t, err)
	assert.Equal(t, super.ID.String(), pair.User.ID)
	assert.Empty(t, pair.User.TenantID)
}

func TestLoginInactiveUserAndTenant(t *testing.T) {
	repo := newFakeAuthRepo()
	active := seedTenant(repo, "ativa", tenant.StatusActive, nil)
	suspended := seedTenant(repo, "suspensa", tenant.StatusSuspended, nil)
	seedUser(repo, &active.ID, "inativo@example.com", mustHash(t, "secret123"), user.StatusInactive, []string{identity.RoleUser})
	seedUser(repo, &suspended.ID, "maria@example.com", mustHash(t, "secret123"), user.StatusActive, []string{identity.RoleUser})

	svc := NewService(repo, &fakeMailer{}, &fakeRecorder{}, testConfig(), zap.NewNop())

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:      "inativo@example.com",
		Password:   "secret123",
		TenantSlug: "ativa",
	})
	assert.ErrorIs(t, err, autherrors.ErrUserInactive)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:      "maria@example.com",
		Password:   "secret123",
		TenantSlug: "suspensa",
	})
	assert.ErrorIs(t, err, tenanterrors.ErrTenantInactive)
}

func TestRegisterCreatesBaseRoleUser(t *testing.T) {
	repo := newFakeAuthRepo()
	rec := &fakeRecorder{}
	tn := seedTenant(repo, "diocese-sp", tenant.StatusActive, nil)

	svc := NewService(repo, &fakeMailer{}, rec, testConfig(), zap.NewNop())

	pair, err := svc.Register(context.Background(), RegisterRequest{
		TenantSlug: "diocese-sp",
		Name:       "João Souza",
		Email:      "joao@example.com",
		Password:   "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{identity.RoleUser}, pair.User.Roles)

	id := uuid.MustParse(pair.User.ID)
	stored := repo.users[id]
	require.NotNil(t, stored)
	assert.Equal(t, tn.ID, *stored.TenantID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))

	require.Len(t, rec.entries, 1)
	assert.Equal(t, audit.ActionRegister, rec.entries[0].Action)
}

func TestRegisterDuplicateEmailAndLimit(t *testing.T) {
	repo := newFakeAuthRepo()
	limit := 1
	tn := seedTenant(repo, "diocese-sp", tenant.StatusActive, &limit)
	seedUser(repo, &tn.ID, "maria@example.com", mustHash(t, "secret123"), user.StatusActive, []string{identity.RoleUser})

	svc := NewService(repo, &fakeMailer{}, &fakeRecorder{}, testConfig(), zap.NewNop())

	_, err := svc.Register(context.Background(), RegisterRequest{
		TenantSlug: "diocese-sp",
		Name:       "Outro",
		Email:      "outro@example.com",
		Password:   "secret123",
	})
	assert.ErrorIs(t, err, tenanterrors.ErrUserLimitReached)

	tn2 := seedTenant(repo, "sem-limite", tenant.StatusActive, nil)
	seedUser(repo, &tn2.ID, "dup@example.com", mustHash(t, "secret123"), user.StatusActive, []string{identity.RoleUser})

	_, err = svc.Register(context.Background(), RegisterRequest{
		TenantSlug: "sem-limite",
		Name:       "Duplicada",
		Email:      "dup@example.com",
		Password:   "secret123",
	})
	assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeAuthRepo()
	tn := seedTenant(repo, "diocese-sp", tenant.StatusActive, nil)
	seedUser(repo, &tn.ID, "maria@example.com", mustHash(t, "secret123"), user.StatusActive, []string{identity.RoleUser})

	svc := NewService(repo, &fakeMailer{}, &fakeRecorder{}, testConfig(), zap.NewNop())

	pair, err := svc.Login(context.Background(), LoginRequest{
		Email:      "maria@example.com",
		Password:   "secret123",
		TenantSlug: "diocese-sp",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.AccessToken})
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)

	renewed, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, pair.User.ID, renewed.User.ID)
	assert.NotEmpty(t, renewed.AccessToken)
}

func TestPasswordResetFlowIsSingleUse(t *testing.T) {
	repo := newFakeAuthRepo()
	mailer := &fakeMailer{}
	tn := seedTenant(repo, "diocese-sp", tenant.StatusActive, nil)
	u := seedUser(repo, &tn.ID, "maria@example.com", mustHash(t, "old-password"), user.StatusActive, []string{identity.RoleUser})

	svc := NewService(repo, mailer, &fakeRecorder{}, testConfig(), zap.NewNop())

	err := svc.RequestPasswordReset(context.Background(), ForgotPasswordRequest{Email: "maria@example.com"})
	require.NoError(t, err)
	require.Len(t, mailer.sentTo, 1)
	assert.Contains(t, mailer.lastURL, "/reset-password?token=")

	var token string
	for tk := range repo.resets {
		token = tk
	}
	require.NotEmpty(t, token)

	err = svc.ConfirmPasswordReset(context.Background(), ResetPasswordRequest{
		Token:       token,
		NewPassword: "new-password-1",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[u.ID].Password), []byte("new-password-1")))

	err = svc.ConfirmPasswordReset(context.Background(), ResetPasswordRequest{
		Token:       token,
		NewPassword: "another-one-2",
	})
	assert.ErrorIs(t, err, autherrors.ErrResetTokenUsed)
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	repo := newFakeAuthRepo()
	mailer := &fakeMailer{}
	svc := NewService(repo, mailer, &fakeRecorder{}, testConfig(), zap.NewNop())

	err := svc.RequestPasswordReset(context.Background(), ForgotPasswordRequest{Email: "ninguem@example.com"})
	assert.NoError(t, err)
	assert.Empty(t, mailer.sentTo)
	assert.Empty(t, repo.resets)
}

func TestPasswordResetMailFailureIsSwallowed(t *testing.T) {
	repo := newFakeAuthRepo()
	mailer := &fakeMailer{fail: assert.AnError}
	tn := seedTenant(repo, "diocese-sp", tenant.StatusActive, nil)
	seedUser(repo, &tn.ID, "maria@example.com", mustHash(t, "secret123"), user.StatusActive, []string{identity.RoleUser})

	svc := NewService(repo, mailer, &fakeRecorder{}, testConfig(), zap.NewNop())

	err := svc.RequestPasswordReset(context.Background(), ForgotPasswordRequest{Email: "maria@example.com"})
	assert.NoError(t, err)
	assert.Len(t, repo.resets, 1)
}
