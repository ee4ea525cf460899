package user_test

import (
	"context"
	"testing"

	"go-formacao/internal/audit"
	"go-formacao/internal/identity"
	tenanterrors "go-formacao/internal/tenant/errors"
	"go-formacao/internal/user"
	usererrors "go-formacao/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	users       map[string]*user.User
	limits      user.TenantLimits
	superadmins int64
	updated     []*user.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  map[string]*user.User{},
		limits: user.TenantLimits{Status: "active"},
	}
}

func (f *fakeRepo) add(u *user.User) *user.User {
	f.users[u.ID.String()] = u
	return u
}

func (f *fakeRepo) Create(ctx context.Context, u *user.User) error {
	f.users[u.ID.String()] = u
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindByIDScoped(ctx context.Context, tenantID, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok || u.TenantID == nil || u.TenantID.String() != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, tenantID string, filter user.ListFilter) ([]user.User, int64, error) {
	var out []user.User
	for _, u := range f.users {
		if tenantID != "" && (u.TenantID == nil || u.TenantID.String() != tenantID) {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) FindFormadores(ctx context.Context, tenantID string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *user.User) error {
	f.users[u.ID.String()] = u
	f.updated = append(f.updated, u)
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) EmailExists(ctx context.Context, tenantID, email, excludeID string) (bool, error) {
	for id, u := range f.users {
		if id == excludeID {
			continue
		}
		if u.Email == email && (tenantID == "" || (u.TenantID != nil && u.TenantID.String() == tenantID)) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CPFExists(ctx context.Context, tenantID, cpf, excludeID string) (bool, error) {
	if cpf == "" {
		return false, nil
	}
	for id, u := range f.users {
		if id == excludeID {
			continue
		}
		if u.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.TenantID != nil && u.TenantID.String() == tenantID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) TenantLimits(ctx context.Context, tenantID string) (*user.TenantLimits, error) {
	limits := f.limits
	return &limits, nil
}

func (f *fakeRepo) CountSuperadmins(ctx context.Context) (int64, error) {
	return f.superadmins, nil
}

type fakeJourneys struct {
	calls []struct {
		UserID string
		From   *string
		To     *string
	}
}

func (f *fakeJourneys) RecordStageChange(ctx context.Context, tenantID, userID string, from, to *string, byID, byName, notes string) error {
	f.calls = append(f.calls, struct {
		UserID string
		From   *string
		To     *string
	}{userID, from, to})
	return nil
}

type fakeRecorder struct {
	entries []audit.Entry
}

func (f *fakeRecorder) Record(ctx context.Context, e audit.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

func seedUser(repo *fakeRepo, tenantID uuid.UUID, roles []string) *user.User {
	u := &user.User{
		ID:       uuid.New(),
		TenantID: &tenantID,
		Name:     "Formando A",
		Email:    uuid.NewString() + "@example.com",
		Password: "x",
		Role:     roles[0],
		Roles:    roles,
		Status:   user.StatusActive,
	}
	return repo.add(u)
}

func adminFor(tenantID uuid.UUID) *identity.Principal {
	return &identity.Principal{
		ID:       uuid.NewString(),
		TenantID: tenantID.String(),
		Name:     "Admin",
		Roles:    []string{identity.RoleAdmin},
	}
}

func TestCreateUserDefaultsRoleAndHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	recorder := &fakeRecorder{}
	svc := user.NewService(repo, &fakeJourneys{}, recorder)

	tenantID := uuid.New()
	p := adminFor(tenantID)

	resp, err := svc.Create(context.Background(), p, user.CreateUserRequest{
		Name:     "Novo",
		Email:    "novo@example.com",
		Password: "senha-secreta",
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{identity.RoleUser}, resp.Roles)

	stored := repo.users[resp.ID]
	assert.NotEqual(t, "senha-secreta", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("senha-secreta")))
	assert.Len(t, recorder.entries, 1)
}

func TestCreateUserRespectsTenantLimit(t *testing.T) {
	repo := newFakeRepo()
	max := 1
	repo.limits.MaxUsers = &max
	tenantID := uuid.New()
	seedUser(repo, tenantID, []string{"user"})

	svc := user.NewService(repo, &fakeJourneys{}, &fakeRecorder{})

	_, err := svc.Create(context.Background(), adminFor(tenantID), user.CreateUserRequest{
		Name:     "Excedente",
		Email:    "x@example.com",
		Password: "senha-secreta",
	})
	assert.ErrorIs(t, err, tenanterrors.ErrUserLimitReached)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	tenantID := uuid.New()
	existing := seedUser(repo, tenantID, []string{"user"})

	svc := user.NewService(repo, &fakeJourneys{}, &fakeRecorder{})

	_, err := svc.Create(context.Background(), adminFor(tenantID), user.CreateUserRequest{
		Name:     "Dup",
		Email:    existing.Email,
		Password: "senha-secreta",
	})
	assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
}

func TestUpdateAllNilIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	tenantID := uuid.New()
	u := seedUser(repo, tenantID, []string{"user"})
	journeys := &fakeJourneys{}

	svc := user.NewService(repo, journeys, &fakeRecorder{})

	before := *u
	resp, err := svc.Update(context.Background(), adminFor(tenantID), u.ID.String(), user.UpdateUserRequest{})

	assert.NoError(t, err)
	assert.Equal(t, before.Name, resp.Name)
	assert.Equal(t, before.Email, resp.Email)
	assert.Empty(t, journeys.calls)
}

func TestUpdateStageChangeAppendsJourneyOnly(t *testing.T) {
	repo := newFakeRepo()
	tenantID := uuid.New()
	u := seedUser(repo, tenantID, []string{"user"})
	journeys := &fakeJourneys{}

	svc := user.NewService(repo, journeys, &fakeRecorder{})

	newStage := uuid.NewString()
	_, err := svc.Update(context.Background(), adminFor(tenantID), u.ID.String(), user.UpdateUserRequest{
		FormativeStageID: &newStage,
	})

	assert.NoError(t, err)
	assert.Len(t, journeys.calls, 1)
	assert.Nil(t, journeys.calls[0].From)
	assert.Equal(t, newStage, *journeys.calls[0].To)

	// same stage again, no second record
	_, err = svc.Update(context.Background(), adminFor(tenantID), u.ID.String(), user.UpdateUserRequest{
		FormativeStageID: &newStage,
	})
	assert.NoError(t, err)
	assert.Len(t, journeys.calls, 1)
}

func TestNonAdminCannotTouchRestrictedFields(t *testing.T) {
	repo := newFakeRepo()
	tenantID := uuid.New()
	u := seedUser(repo, tenantID, []string{"user"})

	svc := user.NewService(repo, &fakeJourneys{}, &fakeRecorder{})

	self := &identity.Principal{
		ID:       u.ID.String(),
		TenantID: tenantID.String(),
		Roles:    []string{identity.RoleUser},
	}

	roles := []string{"admin"}
	_, err := svc.Update(context.Background(), self, u.ID.String(), user.UpdateUserRequest{Roles: &roles})
	assert.ErrorIs(t, err, usererrors.ErrForbiddenFields)

	other := seedUser(repo, tenantID, []string{"user"})
	name := "Hacker"
	_, err = svc.Update(context.Background(), self, other.ID.String(), user.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, usererrors.ErrNotYourProfile)

	// own name is fine
	_, err = svc.Update(context.Background(), self, u.ID.String(), user.UpdateUserRequest{Name: &name})
	assert.NoError(t, err)
}

func TestOwnerIsProtected(t *testing.T) {
	repo := newFakeRepo()
	tenantID := uuid.New()
	owner := seedUser(repo, tenantID, []string{"admin"})
	owner.IsTenantOwner = true

	svc := user.NewService(repo, &fakeJourneys{}, &fakeRecorder{})
	p := adminFor(tenantID)

	roles := []string{"user"}
	_, err := svc.Update(context.Background(), p, owner.ID.String(), user.UpdateUserRequest{Roles: &roles})
	assert.ErrorIs(t, err, usererrors.ErrOwnerProtected)

	err = svc.Delete(context.Background(), p, owner.ID.String())
	assert.ErrorIs(t, err, usererrors.ErrOwnerProtected)
}

func TestDeleteSelfRejected(t *testing.T) {
	repo := newFakeRepo()
	tenantID := uuid.New()
	u := seedUser(repo, tenantID, []string{"admin"})

	svc := user.NewService(repo, &fakeJourneys{}, &fakeRecorder{})
	p := &identity.Principal{ID: u.ID.String(), TenantID: tenantID.String(), Roles: []string{identity.RoleAdmin}}

	assert.ErrorIs(t, svc.Delete(context.Background(), p, u.ID.String()), usererrors.ErrSelfDelete)
}

func TestTenantIsolationOnGet(t *testing.T) {
	repo := newFakeRepo()
	tenantA := uuid.New()
	tenantB := uuid.New()
	foreign := seedUser(repo, tenantB, []string{"user"})

	svc := user.NewService(repo, &fakeJourneys{}, &fakeRecorder{})

	// same id, wrong tenant: 404 semantics
	_, err := svc.GetByID(context.Background(), adminFor(tenantA), foreign.ID.String())
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)

	// superadmin sees across tenants
	super := &identity.Principal{ID: uuid.NewString(), Roles: []string{identity.RoleSuperadmin}}
	resp, err := svc.GetByID(context.Background(), super, foreign.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, foreign.ID.String(), resp.ID)
}

func TestEnsureSuperadminIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := user.NewService(repo, &fakeJourneys{}, &fakeRecorder{})

	assert.NoError(t, svc.EnsureSuperadmin(context.Background(), "root@example.com", "senha-muito-secreta"))
	assert.Len(t, repo.users, 1)

	repo.superadmins = 1
	assert.NoError(t, svc.EnsureSuperadmin(context.Background(), "root@example.com", "senha-muito-secreta"))
	assert.Len(t, repo.users, 1)
}

func TestLoadPrincipalNormalizesRoles(t *testing.T) {
	repo := newFakeRepo()
	tenantID := uuid.New()
	u := seedUser(repo, tenantID, []string{"formador"})
	u.Role = "user" // legacy column diverged from the list

	svc := user.NewService(repo, &fakeJourneys{}, &fakeRecorder{})

	p, err := svc.LoadPrincipal(context.Background(), u.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, []string{"user", "formador"}, p.Roles)
	assert.Equal(t, tenantID.String(), p.TenantID)
}
