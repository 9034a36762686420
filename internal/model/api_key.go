package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxActiveAPIKeys caps the number of active API keys an account may hold.
const MaxActiveAPIKeys = 10

// APIKeyStore persists API keys.
type APIKeyStore interface {
	// CreateWithLimit stores key unless the owner already holds limit active keys, in which
	// case it returns ErrLimitExceeded.
	CreateWithLimit(ctx context.Context, key APIKey, limit int, now time.Time) error
	CountActive(ctx context.Context, accountID uuid.UUID, now time.Time) (int, error)
	GetActiveByPrefix(ctx context.Context, prefix string, now time.Time) (APIKey, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]APIKey, error)
	Revoke(ctx context.Context, accountID, keyID uuid.UUID, now time.Time) error
	TouchLastUsed(ctx context.Context, keyID uuid.UUID, now time.Time) error
}

// APIKey is a stored API key. The raw key is never persisted.
type APIKey struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	Name       string
	KeyHash    string
	Prefix     string
	Scopes     []string
	ExpiresAt  *time.Time
	LastUsedAt *time.Time
	CreatedAt  time.Time
	Revoked    bool
	RevokedAt  *time.Time
}

// IsExpired reports whether the key has passed its expiry at now.
func (k APIKey) IsExpired(now time.Time) bool {
	return k.ExpiresAt != nil && !now.Before(*k.ExpiresAt)
}

// IsActive reports whether the key is neither revoked nor expired at now.
func (k APIKey) IsActive(now time.Time) bool {
	return !k.Revoked && !k.IsExpired(now)
}

// APIKeyInfo is the listing view of an API key. It never carries key material.
type APIKeyInfo struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"key_name"`
	Prefix     string     `json:"prefix"`
	Scopes     []string   `json:"scopes"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	IsActive   bool       `json:"is_active"`
}

// NewAPIKeyInfo maps a stored key to its listing view.
func NewAPIKeyInfo(k APIKey, now time.Time) APIKeyInfo {
	scopes := k.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	return APIKeyInfo{
		ID:         k.ID,
		Name:       k.Name,
		Prefix:     k.Prefix,
		Scopes:     scopes,
		ExpiresAt:  k.ExpiresAt,
		LastUsedAt: k.LastUsedAt,
		CreatedAt:  k.CreatedAt,
		IsActive:   k.IsActive(now),
	}
}

// CreatedAPIKey is returned once, at creation, and is the only carrier of the raw key.
type CreatedAPIKey struct {
	APIKeyInfo
	APIKey string `json:"api_key"`
}
