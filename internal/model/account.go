package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoleUser is the role every account receives on registration.
const RoleUser = "User"

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByEmailOrUsername(ctx context.Context, identifier string) (Account, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	// CreateWithSession stores the account, its roles and its first refresh token atomically.
	CreateWithSession(ctx context.Context, account Account, session RefreshToken) (Account, error)
	Update(ctx context.Context, account Account) error
	// ReplacePassword stores the new password hash.
	ReplacePassword(ctx context.Context, id uuid.UUID, passwordHash string, now time.Time) error
	LockoutStore
}

// LockoutStore keeps the failed-login counter of an account.
type LockoutStore interface {
	// RegisterFailedLogin atomically increments the counter and sets locked_until when the
	// new value reaches maxAttempts. A lock that expired before now is cleared first and the
	// count restarts at one. It returns the resulting state.
	RegisterFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int, now, lockUntil time.Time) (LockoutState, error)
	// RegisterSuccessfulLogin resets the counter, clears the lock and stamps last_login_at.
	RegisterSuccessfulLogin(ctx context.Context, id uuid.UUID, now time.Time) error
}

// LockoutState is the failed-login state of an account after an update.
type LockoutState struct {
	FailedAttempts int
	LockedUntil    *time.Time
}

// Account represents a stored account with its credential material.
type Account struct {
	ID                  uuid.UUID
	Email               string
	Username            string
	PasswordHash        string
	FullName            *string
	AvatarURL           *string
	PhoneNumber         *string
	EmailVerified       bool
	Active              bool
	FailedLoginAttempts int
	LockedUntil         *time.Time
	Roles               []string
	CreatedAt           time.Time
	ModifiedAt          time.Time
	LastLoginAt         *time.Time
}

// IsLocked reports whether the lockout is still in force at now.
func (a Account) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && a.LockedUntil.After(now)
}

// Profile is the public view of an account.
type Profile struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Username      string     `json:"username"`
	FullName      *string    `json:"full_name,omitempty"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	EmailVerified bool       `json:"is_email_verified"`
	Active        bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	Roles         []string   `json:"roles"`
}

// NewProfile maps an account to its public profile.
func NewProfile(a Account) Profile {
	roles := a.Roles
	if roles == nil {
		roles = []string{}
	}
	return Profile{
		ID:            a.ID,
		Email:         a.Email,
		Username:      a.Username,
		FullName:      a.FullName,
		AvatarURL:     a.AvatarURL,
		PhoneNumber:   a.PhoneNumber,
		EmailVerified: a.EmailVerified,
		Active:        a.Active,
		CreatedAt:     a.CreatedAt,
		LastLoginAt:   a.LastLoginAt,
		Roles:         roles,
	}
}
