package users

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nexvault/storefront-backend/pkg/db/models"
	"github.com/nexvault/storefront-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID            uuid.UUID        `json:"id"`
	Email         string           `json:"email"`
	Username      string           `json:"username"`
	DisplayName   string           `json:"display_name"`
	ProfilePicURL *string          `json:"profile_pic_url,omitempty"`
	SystemRole    enums.SystemRole `json:"system_role"`
	IsActive      bool             `json:"is_active"`
	LastLogin     *time.Time       `json:"last_login,omitempty"`
	LastActive    *time.Time       `json:"last_active,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Username     string
	DisplayName  string
	SystemRole   enums.SystemRole
	IsActive     *bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		DisplayName:   u.DisplayName,
		ProfilePicURL: u.ProfilePicURL,
		SystemRole:    u.SystemRole,
		IsActive:      u.IsActive,
		LastLogin:     u.LastLogin,
		LastActive:    u.LastActive,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}
	role := c.SystemRole
	if !role.IsValid() {
		role = enums.SystemRoleUser
	}
	username := c.Username
	if username == "" {
		username = DefaultUsername(c.Email)
	}
	displayName := c.DisplayName
	if displayName == "" {
		displayName = username
	}

	return &models.User{
		ID:           uuid.New(),
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Username:     username,
		DisplayName:  displayName,
		SystemRole:   role,
		IsActive:     isActive,
	}
}

// DefaultUsername derives a username from the local part of an email.
func DefaultUsername(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}
