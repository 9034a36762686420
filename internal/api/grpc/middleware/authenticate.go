package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authkeeper/internal/api/grpc/authv1"
	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

const (
	authorizationHeader = "authorization"
	apiKeyHeader        = "x-api-key"
	bearerScheme        = "Bearer"
)

// TokenVerifier resolves the principal behind an access token.
type TokenVerifier interface {
	VerifyAccessToken(token string) (model.Principal, bool)
}

// AccountLookup loads the account behind a bearer token.
type AccountLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.Account, error)
}

// APIKeyAuthenticator resolves the principal behind a raw API key.
type APIKeyAuthenticator interface {
	Authenticate(ctx context.Context, raw string) (model.Principal, error)
}

// apiKeyDenied lists the methods an API-key caller may not invoke.
var apiKeyDenied = map[string]struct{}{
	authv1.CreateAPIKeyMethod:   {},
	authv1.ListAPIKeysMethod:    {},
	authv1.RevokeAPIKeyMethod:   {},
	authv1.ChangePasswordMethod: {},
}

// Authenticate validates bearer tokens or API keys and injects the principal into context.
type Authenticate struct {
	verifier       TokenVerifier
	accounts       AccountLookup
	apiKeys        APIKeyAuthenticator
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(
	verifier TokenVerifier,
	accounts AccountLookup,
	apiKeys APIKeyAuthenticator,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Authenticate {
	return &Authenticate{
		verifier:       verifier,
		accounts:       accounts,
		apiKeys:        apiKeys,
		contextManager: contextManager,
		logger:         logger,
	}
}

// AuthFunc reads the x-api-key or authorization metadata and returns a context carrying
// the caller's principal. An API key wins when both are present.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var bearer, apiKey string
	malformed := false
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(apiKeyHeader); len(values) > 0 {
			apiKey = strings.TrimSpace(values[0])
		}
		if values := md.Get(authorizationHeader); len(values) > 0 {
			bearer, ok = parseBearer(values[0])
			malformed = !ok
		}
	}

	if malformed && apiKey == "" {
		return nil, status.Error(codes.Unauthenticated, apierror.NewErrInvalidAuthorizationToken().Error())
	}

	principal, authErr := m.authenticate(ctx, bearer, apiKey)
	if authErr != nil {
		return nil, status.Error(codes.Unauthenticated, authErr.Error())
	}

	return m.contextManager.SetPrincipalToContext(ctx, principal), nil
}

func (m *Authenticate) authenticate(ctx context.Context, bearer, apiKey string) (model.Principal, error) {
	switch {
	case apiKey != "":
		principal, err := m.apiKeys.Authenticate(ctx, apiKey)
		if err != nil {
			if apierror.KindOf(err) == apierror.KindInternal {
				m.logger.Error("Authenticate: API key lookup failed", "error", err.Error())
			}
			return model.Principal{}, apierror.NewErrInvalidAuthorizationToken()
		}
		return checkPrincipal(principal)
	case bearer != "":
		principal, ok := m.verifier.VerifyAccessToken(bearer)
		if !ok {
			return model.Principal{}, apierror.NewErrInvalidAuthorizationToken()
		}
		principal, err := checkPrincipal(principal)
		if err != nil {
			return model.Principal{}, err
		}
		if err := m.checkActive(ctx, principal.AccountID); err != nil {
			return model.Principal{}, err
		}
		return principal, nil
	default:
		return model.Principal{}, apierror.NewErrMissingAuthorizationToken()
	}
}

// checkActive rejects access tokens of accounts that were deleted or deactivated after
// the token was issued.
func (m *Authenticate) checkActive(ctx context.Context, accountID uuid.UUID) error {
	account, err := m.accounts.GetByID(ctx, accountID)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrInvalidAuthorizationToken()
	}
	if err != nil {
		m.logger.Error("Authenticate: account lookup failed",
			"account_id", accountID,
			"error", err.Error())
		return apierror.NewErrInvalidAuthorizationToken()
	}
	if !account.Active {
		return apierror.NewErrAccountInactive()
	}
	return nil
}

// parseBearer extracts the token from an authorization value. The scheme is matched
// case-insensitively; ok is false when a value is present without the Bearer scheme.
func parseBearer(value string) (token string, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", true
	}
	scheme, rest, _ := strings.Cut(value, " ")
	if !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func checkPrincipal(principal model.Principal) (model.Principal, error) {
	if principal.AccountID == uuid.Nil {
		return model.Principal{}, apierror.NewErrInvalidAuthorizationToken()
	}
	return principal, nil
}

// RestrictAPIKeys rejects API-key callers on key management and password change.
func (m *Authenticate) RestrictAPIKeys(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, denied := apiKeyDenied[info.FullMethod]; denied {
		principal, ok := m.contextManager.GetPrincipalFromContext(ctx)
		if ok && principal.AuthType == model.AuthTypeAPIKey {
			m.logger.Info("Authenticate: API key caller denied",
				"method", info.FullMethod,
				"account_id", principal.AccountID)
			return nil, status.Error(codes.PermissionDenied,
				apierror.NewErrPermissionDenied("API keys cannot be used for this operation").Error())
		}
	}

	return handler(ctx, req)
}
