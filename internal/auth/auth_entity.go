package auth

import (
	"time"

	"github.com/google/uuid"
)

// PasswordReset makes reset tokens single use: the JWT alone proves
// identity, the row proves it was not spent yet.
type PasswordReset struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Token     string    `gorm:"column:token;type:text;not null;index"`
	Used      bool      `gorm:"column:used;default:false"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}
