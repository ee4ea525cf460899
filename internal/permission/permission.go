package permission

import (
	"go-formacao/internal/identity"

	"github.com/lib/pq"
)

// Set restricts who can see a piece of content. Four independent ID lists,
// matching any one of them is enough. Embedded into document and video
// entities as text[] columns.
type Set struct {
	AllowedUserIDs     pq.StringArray `gorm:"type:text[];column:allowed_user_ids" json:"allowed_user_ids"`
	AllowedLocationIDs pq.StringArray `gorm:"type:text[];column:allowed_location_ids" json:"allowed_location_ids"`
	AllowedFunctionIDs pq.StringArray `gorm:"type:text[];column:allowed_function_ids" json:"allowed_function_ids"`
	AllowedStageIDs    pq.StringArray `gorm:"type:text[];column:allowed_stage_ids" json:"allowed_stage_ids"`
}

// Empty reports whether no restriction list has any entry.
func (s *Set) Empty() bool {
	return len(s.AllowedUserIDs) == 0 &&
		len(s.AllowedLocationIDs) == 0 &&
		len(s.AllowedFunctionIDs) == 0 &&
		len(s.AllowedStageIDs) == 0
}

// Check decides whether the principal may access content guarded by set.
// No set at all means unrestricted, admins always pass, membership in any
// list passes, and a set whose four lists are all empty is treated as
// unrestricted rather than locked for everyone.
func Check(p *identity.Principal, set *Set) bool {
	if set == nil {
		return true
	}
	if p.IsAdmin() {
		return true
	}
	if contains(set.AllowedUserIDs, p.ID) {
		return true
	}
	if p.LocationID != "" && contains(set.AllowedLocationIDs, p.LocationID) {
		return true
	}
	if p.FunctionID != "" && contains(set.AllowedFunctionIDs, p.FunctionID) {
		return true
	}
	if p.FormativeStageID != "" && contains(set.AllowedStageIDs, p.FormativeStageID) {
		return true
	}
	return set.Empty()
}

func contains(list pq.StringArray, id string) bool {
	if id == "" {
		return false
	}
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
