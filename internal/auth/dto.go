package auth

import "github.com/nexvault/storefront-backend/internal/users"

// SignUpRequest captures the registration form.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest pairs the refresh token with the access token it was issued for.
// The access token may be expired.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResponse contains the tokens and user produced by a successful sign-in.
type LoginResponse struct {
	TokenPair
	User *users.UserDTO `json:"user"`
}

type UpdateProfileRequest struct {
	ProfilePicURL *string `json:"profile_pic_url" validate:"omitempty,url,max=2048"`
}
