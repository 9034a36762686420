package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RefreshTokenStore persists refresh tokens and their rotation chain.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByHash(ctx context.Context, tokenHash []byte) (RefreshToken, error)
	// GetActiveByHash returns ErrNotFound unless the token exists, is not revoked and has not
	// expired at now.
	GetActiveByHash(ctx context.Context, tokenHash []byte, now time.Time) (RefreshToken, error)
	// Rotate revokes the active token with oldHash, links it to next and stores next, all in
	// one transaction. It returns ErrTokenInactive when the old token is no longer active.
	Rotate(ctx context.Context, oldHash []byte, next RefreshToken, now time.Time) (RefreshToken, error)
	RevokeByHash(ctx context.Context, tokenHash []byte, now time.Time) error
	RevokeAllByAccount(ctx context.Context, accountID uuid.UUID, now time.Time) error
}

// RefreshToken is a stored refresh token. Only the SHA-256 hash of the value is kept.
type RefreshToken struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	TokenHash  []byte
	ExpiresAt  time.Time
	CreatedAt  time.Time
	RevokedAt  *time.Time
	ReplacedBy *uuid.UUID
}

// IsActive reports whether the token can still be exchanged at now.
func (t RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
