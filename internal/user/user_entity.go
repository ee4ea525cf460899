package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User carries both the legacy scalar role column and the roles array.
// Reads go through identity.NormalizeRoles, writes keep the two in sync.
type User struct {
	ID               uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID         *uuid.UUID     `gorm:"column:tenant_id;type:uuid;index"`
	Name             string         `gorm:"column:name;type:varchar(255);not null"`
	Email            string         `gorm:"column:email;type:varchar(255);not null;index"`
	CPF              string         `gorm:"column:cpf;type:varchar(14)"`
	Password         string         `gorm:"column:password;type:text;not null"`
	Role             string         `gorm:"column:role;type:varchar(50)"`
	Roles            pq.StringArray `gorm:"column:roles;type:text[]"`
	Status           string         `gorm:"column:status;type:varchar(20);default:active"`
	IsTenantOwner    bool           `gorm:"column:is_tenant_owner;default:false"`
	LocationID       *uuid.UUID     `gorm:"column:location_id;type:uuid"`
	FunctionID       *uuid.UUID     `gorm:"column:function_id;type:uuid"`
	FormativeStageID *uuid.UUID     `gorm:"column:formative_stage_id;type:uuid"`
	FormadorID       *uuid.UUID     `gorm:"column:formador_id;type:uuid"`
	PhotoPath        string         `gorm:"column:photo_path;type:text"`
	Birthdate        *time.Time     `gorm:"column:birthdate"`
	Phone            string         `gorm:"column:phone;type:varchar(50)"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
