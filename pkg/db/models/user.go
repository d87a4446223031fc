package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/nexvault/storefront-backend/pkg/enums"
)

// User is the identity row; profile fields live on the same record.
type User struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Email         string           `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash  string           `gorm:"column:password_hash;not null"`
	Username      string           `gorm:"column:username;not null"`
	DisplayName   string           `gorm:"column:display_name;not null"`
	ProfilePicURL *string          `gorm:"column:profile_pic_url"`
	SystemRole    enums.SystemRole `gorm:"column:system_role;type:text;not null;default:user"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true"`
	LastLogin     *time.Time       `gorm:"column:last_login"`
	LastActive    *time.Time       `gorm:"column:last_active"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }
