package model

import "time"

// RegisterRequest carries the fields of a new account.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email,max=255"`
	Username    string  `json:"username" validate:"required,min=3,max=100,username"`
	Password    string  `json:"password" validate:"required,password"`
	FullName    *string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=20,phone"`
}

// LoginRequest identifies an account by email or username.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required,max=255"`
	Password        string `json:"password" validate:"required"`
	RememberMe      bool   `json:"remember_me"`
}

// RefreshTokenRequest carries the refresh token to exchange or revoke.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password"`
}

// ResetPasswordRequest starts the password reset flow.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

// ConfirmResetPasswordRequest completes the password reset flow.
type ConfirmResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	Email       string `json:"email" validate:"required,email,max=255"`
	NewPassword string `json:"new_password" validate:"required,password"`
}

// UpdateAccountRequest changes profile fields. Empty fields are left untouched.
type UpdateAccountRequest struct {
	FullName    string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,max=500,url"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=20,phone"`
}

// CreateAPIKeyRequest describes a new API key.
type CreateAPIKeyRequest struct {
	Name      string     `json:"key_name" validate:"required,max=100,keyname"`
	Scopes    []string   `json:"scopes" validate:"required,min=1,dive,required,scope"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" validate:"omitempty,future"`
}

// RevokeAPIKeyRequest names the key to revoke.
type RevokeAPIKeyRequest struct {
	KeyID string `json:"key_id" validate:"required,uuid"`
}

// ValidateAPIKeyRequest carries a raw API key.
type ValidateAPIKeyRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

// UploadAvatarRequest carries raw image bytes.
type UploadAvatarRequest struct {
	Image       []byte `json:"image" validate:"required"`
	ContentType string `json:"content_type,omitempty"`
}

// APIKeyValidation is the result of a successful API key check.
type APIKeyValidation struct {
	User   Profile  `json:"user"`
	Scopes []string `json:"scopes"`
	KeyID  string   `json:"key_id"`
}
