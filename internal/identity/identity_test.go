package identity_test

import (
	"testing"

	"go-formacao/internal/identity"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoles(t *testing.T) {
	tests := []struct {
		name   string
		legacy string
		roles  []string
		want   []string
	}{
		{"legacy only", "admin", nil, []string{"admin"}},
		{"list only", "", []string{"formador", "user"}, []string{"formador", "user"}},
		{"legacy duplicated in list", "admin", []string{"admin", "formador"}, []string{"admin", "formador"}},
		{"legacy not in list", "user", []string{"formador"}, []string{"user", "formador"}},
		{"empty entries dropped", "", []string{"", "admin", ""}, []string{"admin"}},
		{"both empty", "", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.NormalizeRoles(tt.legacy, tt.roles))
		})
	}
}

func TestPrincipalRoleChecks(t *testing.T) {
	admin := &identity.Principal{Roles: []string{identity.RoleAdmin}}
	super := &identity.Principal{Roles: []string{identity.RoleSuperadmin}}
	formador := &identity.Principal{Roles: []string{identity.RoleFormador}}
	plain := &identity.Principal{Roles: []string{identity.RoleUser}}

	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsSuperadmin())

	assert.True(t, super.IsAdmin())
	assert.True(t, super.IsSuperadmin())

	assert.True(t, formador.IsFormador())
	assert.False(t, formador.IsAdmin())

	assert.False(t, plain.IsAdmin())
	assert.False(t, plain.IsFormador())
}
