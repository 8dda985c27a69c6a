package model

import (
	"time"

	"airline-ops-backend/internal/access"
)

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string      `gorm:"primaryKey" json:"endpoint"`
	P256DH    string      `gorm:"column:p256dh;not null" json:"p256dh"`
	Auth      string      `gorm:"not null" json:"auth"`
	UserID    int64       `gorm:"not null;index" json:"user_id"`
	Role      access.Role `gorm:"size:16;not null;index:idx_sub_role" json:"role"`
	RoleID    string      `gorm:"size:16;index:idx_sub_role" json:"role_id"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
}
