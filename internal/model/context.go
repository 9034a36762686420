package model

import (
	"context"

	"github.com/google/uuid"
)

// AuthType names the credential a caller authenticated with.
type AuthType string

const (
	// AuthTypeBearer is a JWT access token.
	AuthTypeBearer AuthType = "bearer"
	// AuthTypeAPIKey is an API key.
	AuthTypeAPIKey AuthType = "api_key"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	AccountID     uuid.UUID
	Username      string
	Email         string
	FullName      string
	EmailVerified bool
	Active        bool
	Roles         []string
	Scopes        []string
	AuthType      AuthType
}

// ContextManager stores and retrieves the request principal.
type ContextManager interface {
	SetPrincipalToContext(ctx context.Context, principal Principal) context.Context
	GetPrincipalFromContext(ctx context.Context) (Principal, bool)
}
