package model

import (
	"time"

	"airline-ops-backend/internal/access"
)

// User is an account. RoleID is empty for management accounts.
type User struct {
	UserID       int64       `gorm:"primaryKey" json:"user_id"`
	Username     string      `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string      `gorm:"size:128;not null" json:"-"`
	Role         access.Role `gorm:"size:16;not null;index:idx_user_role" json:"role"`
	RoleID       string      `gorm:"size:16;index:idx_user_role" json:"role_id"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
}
