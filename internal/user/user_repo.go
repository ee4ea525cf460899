package user

import (
	"context"

	"go-formacao/internal/tenant"

	"gorm.io/gorm"
)

// TenantLimits is the slice of the tenants table this package needs.
type TenantLimits struct {
	Status   string
	MaxUsers *int
}

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDScoped(ctx context.Context, tenantID, id string) (*User, error)
	FindAll(ctx context.Context, tenantID string, f ListFilter) ([]User, int64, error)
	FindFormadores(ctx context.Context, tenantID string) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
	EmailExists(ctx context.Context, tenantID, email, excludeID string) (bool, error)
	CPFExists(ctx context.Context, tenantID, cpf, excludeID string) (bool, error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
	TenantLimits(ctx context.Context, tenantID string) (*TenantLimits, error)
	CountSuperadmins(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByIDScoped(ctx context.Context, tenantID, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindAll(ctx context.Context, tenantID string, f ListFilter) ([]User, int64, error) {
	db := r.db.WithContext(ctx).Model(&User{})
	if tenantID != "" {
		db = db.Scopes(tenant.Scope(tenantID))
	}

	if f.Search != "" {
		like := "%" + f.Search + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ? OR cpf ILIKE ?", like, like, like)
	}
	if f.Role != "" {
		db = db.Where("role = ? OR ? = ANY(roles)", f.Role, f.Role)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.LocationID != "" {
		db = db.Where("location_id = ?", f.LocationID)
	}
	if f.FunctionID != "" {
		db = db.Where("function_id = ?", f.FunctionID)
	}
	if f.StageID != "" {
		db = db.Where("formative_stage_id = ?", f.StageID)
	}
	if f.FormadorID != "" {
		db = db.Where("formador_id = ?", f.FormadorID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}
	if f.Offset > 0 {
		db = db.Offset(f.Offset)
	}

	var users []User
	err := db.Order("name ASC").Find(&users).Error
	return users, total, err
}

func (r *repository) FindFormadores(ctx context.Context, tenantID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("role = ? OR ? = ANY(roles)", "formador", "formador").
		Where("status = ?", StatusActive).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (r *repository) EmailExists(ctx context.Context, tenantID, email, excludeID string) (bool, error) {
	db := r.db.WithContext(ctx).Model(&User{}).Where("email = ?", email)
	if tenantID != "" {
		db = db.Scopes(tenant.Scope(tenantID))
	}
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) CPFExists(ctx context.Context, tenantID, cpf, excludeID string) (bool, error) {
	if cpf == "" {
		return false, nil
	}
	db := r.db.WithContext(ctx).Model(&User{}).Where("cpf = ?", cpf)
	if tenantID != "" {
		db = db.Scopes(tenant.Scope(tenantID))
	}
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Scopes(tenant.Scope(tenantID)).Count(&count).Error
	return count, err
}

func (r *repository) TenantLimits(ctx context.Context, tenantID string) (*TenantLimits, error) {
	var limits TenantLimits
	err := r.db.WithContext(ctx).
		Table("tenants").
		Select("status, max_users").
		Where("id = ?", tenantID).
		Take(&limits).Error
	return &limits, err
}

func (r *repository) CountSuperadmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("role = ? OR ? = ANY(roles)", "superadmin", "superadmin").
		Count(&count).Error
	return count, err
}
