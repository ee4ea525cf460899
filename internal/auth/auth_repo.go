package auth

import (
	"context"
	"time"

	"go-formacao/internal/tenant"
	"go-formacao/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	FindUserByEmail(ctx context.Context, tenantID *uuid.UUID, email string) (*user.User, error)
	FindAnyUserByEmail(ctx context.Context, email string) (*user.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	CreateUser(ctx context.Context, u *user.User) error
	EmailExists(ctx context.Context, tenantID uuid.UUID, email string) (bool, error)
	CPFExists(ctx context.Context, tenantID uuid.UUID, cpf string) (bool, error)
	CountUsers(ctx context.Context, tenantID uuid.UUID) (int64, error)

	FindTenantBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)

	CreatePasswordReset(ctx context.Context, r *PasswordReset) error
	FindActiveReset(ctx context.Context, token string) (*PasswordReset, error)
	MarkResetUsed(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindUserByEmail scopes by tenant; nil tenantID matches platform
// accounts, which carry no tenant at all.
func (r *repository) FindUserByEmail(ctx context.Context, tenantID *uuid.UUID, email string) (*user.User, error) {
	var u user.User
	q := r.db.WithContext(ctx)
	if tenantID == nil {
		q = q.Where("tenant_id IS NULL")
	} else {
		q = q.Where("tenant_id = ?", *tenantID)
	}
	if err := q.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAnyUserByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) CreateUser(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) EmailExists(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("tenant_id = ? AND email = ?", tenantID, email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CPFExists(ctx context.Context, tenantID uuid.UUID, cpf string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("tenant_id = ? AND cpf = ?", tenantID, cpf).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountUsers(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}

func (r *repository) FindTenantBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) CreatePasswordReset(ctx context.Context, reset *PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

func (r *repository) FindActiveReset(ctx context.Context, token string) (*PasswordReset, error) {
	var reset PasswordReset
	err := r.db.WithContext(ctx).
		Where("token = ? AND used = false AND expires_at > ?", token, time.Now()).
		First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *repository) MarkResetUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&PasswordReset{}).
		Where("id = ?", id).
		UpdateColumn("used", true).Error
}

func (r *repository) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&user.User{}).
		Where("id = ?", userID).
		UpdateColumn("password", hash).Error
}
