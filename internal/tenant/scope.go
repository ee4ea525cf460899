package tenant

import (
	"go-formacao/internal/identity"
	tenanterrors "go-formacao/internal/tenant/errors"

	"gorm.io/gorm"
)

// Scope narrows a query to one tenant.
func Scope(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// ScopeFor builds the tenant filter for the caller. Superadmins query
// across tenants, everyone else is pinned to their own.
func ScopeFor(p *identity.Principal) (func(db *gorm.DB) *gorm.DB, error) {
	if p.IsSuperadmin() {
		return func(db *gorm.DB) *gorm.DB { return db }, nil
	}
	if p.TenantID == "" {
		return nil, tenanterrors.ErrNoTenant
	}
	return Scope(p.TenantID), nil
}
