package permission_test

import (
	"testing"

	"go-formacao/internal/identity"
	"go-formacao/internal/permission"

	"github.com/stretchr/testify/assert"
)

func principal() *identity.Principal {
	return &identity.Principal{
		ID:               "u1",
		Roles:            []string{identity.RoleUser},
		LocationID:       "loc1",
		FunctionID:       "fn1",
		FormativeStageID: "st1",
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		p    *identity.Principal
		set  *permission.Set
		want bool
	}{
		{
			name: "nil set allows everyone",
			p:    principal(),
			set:  nil,
			want: true,
		},
		{
			name: "all lists empty allows everyone",
			p:    principal(),
			set:  &permission.Set{},
			want: true,
		},
		{
			name: "admin bypasses restrictions",
			p:    &identity.Principal{ID: "x", Roles: []string{identity.RoleAdmin}},
			set:  &permission.Set{AllowedUserIDs: []string{"someone-else"}},
			want: true,
		},
		{
			name: "superadmin bypasses restrictions",
			p:    &identity.Principal{ID: "x", Roles: []string{identity.RoleSuperadmin}},
			set:  &permission.Set{AllowedUserIDs: []string{"someone-else"}},
			want: true,
		},
		{
			name: "user id match",
			p:    principal(),
			set:  &permission.Set{AllowedUserIDs: []string{"u1"}},
			want: true,
		},
		{
			name: "location match",
			p:    principal(),
			set:  &permission.Set{AllowedLocationIDs: []string{"loc1"}},
			want: true,
		},
		{
			name: "function match",
			p:    principal(),
			set:  &permission.Set{AllowedFunctionIDs: []string{"fn1"}},
			want: true,
		},
		{
			name: "stage match",
			p:    principal(),
			set:  &permission.Set{AllowedStageIDs: []string{"st1"}},
			want: true,
		},
		{
			name: "no list matches",
			p:    principal(),
			set: &permission.Set{
				AllowedUserIDs:     []string{"u2"},
				AllowedLocationIDs: []string{"loc2"},
			},
			want: false,
		},
		{
			name: "restricted and principal has no org pointers",
			p:    &identity.Principal{ID: "u9", Roles: []string{identity.RoleUser}},
			set:  &permission.Set{AllowedLocationIDs: []string{"loc1"}},
			want: false,
		},
		{
			name: "empty principal pointer never matches empty-string entry",
			p:    &identity.Principal{ID: "u9", Roles: []string{identity.RoleUser}},
			set:  &permission.Set{AllowedStageIDs: []string{""}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, permission.Check(tt.p, tt.set))
		})
	}
}
