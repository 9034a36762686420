package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authkeeper/internal/api/grpc/authv1"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

var _ authv1.AuthServer = (*Auth)(nil)

// AuthService defines registration, login and password operations.
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.TokenPair, error)
	Login(ctx context.Context, req model.LoginRequest) (model.TokenPair, error)
	RefreshToken(ctx context.Context, req model.RefreshTokenRequest) (model.TokenPair, error)
	Logout(ctx context.Context, req model.RefreshTokenRequest) error
	ChangePassword(ctx context.Context, accountID uuid.UUID, req model.ChangePasswordRequest) error
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error
	ConfirmResetPassword(ctx context.Context, req model.ConfirmResetPasswordRequest) error
}

// AccountService defines profile operations.
type AccountService interface {
	GetAccountInfo(ctx context.Context, accountID uuid.UUID) (model.Profile, error)
	UpdateAccountInfo(ctx context.Context, accountID uuid.UUID, req model.UpdateAccountRequest) (model.Profile, error)
	UploadAvatar(ctx context.Context, accountID uuid.UUID, req model.UploadAvatarRequest) (model.Profile, error)
}

// APIKeyService defines API key lifecycle operations.
type APIKeyService interface {
	Create(ctx context.Context, accountID uuid.UUID, req model.CreateAPIKeyRequest) (model.CreatedAPIKey, error)
	List(ctx context.Context, accountID uuid.UUID) ([]model.APIKeyInfo, error)
	Revoke(ctx context.Context, accountID uuid.UUID, req model.RevokeAPIKeyRequest) error
	Validate(ctx context.Context, req model.ValidateAPIKeyRequest) (model.APIKeyValidation, error)
}

// ErrorReporter receives unexpected errors.
type ErrorReporter interface {
	Report(ctx context.Context, err error)
}

// Auth handles the gRPC endpoints of the Auth service.
type Auth struct {
	authService    AuthService
	accountService AccountService
	apiKeyService  APIKeyService
	contextManager model.ContextManager
	reporter       ErrorReporter
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	accountService AccountService,
	apiKeyService APIKeyService,
	contextManager model.ContextManager,
	reporter ErrorReporter,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService:    authService,
		accountService: accountService,
		apiKeyService:  apiKeyService,
		contextManager: contextManager,
		reporter:       reporter,
		logger:         logger,
	}
}

func (h *Auth) accountID(ctx context.Context) (uuid.UUID, error) {
	principal, ok := h.contextManager.GetPrincipalFromContext(ctx)
	if !ok || principal.AccountID == uuid.Nil {
		return uuid.Nil, status.Error(codes.Unauthenticated, "User not authenticated")
	}
	return principal.AccountID, nil
}

// Register creates an account and returns its first token pair.
func (h *Auth) Register(ctx context.Context, req *model.RegisterRequest) (*model.Envelope[model.TokenPair], error) {
	h.logger.Debug("Auth handler: processing registration request",
		"username", req.Username)

	pair, err := h.authService.Register(ctx, *req)
	if err != nil {
		return fail[model.TokenPair](ctx, h, authv1.RegisterMethod, "An error occurred during registration", err)
	}

	return ok("User registered successfully", pair), nil
}

// Login authenticates by password and returns a token pair.
func (h *Auth) Login(ctx context.Context, req *model.LoginRequest) (*model.Envelope[model.TokenPair], error) {
	h.logger.Debug("Auth handler: processing login request")

	pair, err := h.authService.Login(ctx, *req)
	if err != nil {
		return fail[model.TokenPair](ctx, h, authv1.LoginMethod, "An error occurred during login", err)
	}

	return ok("Login successful", pair), nil
}

// RefreshToken rotates a refresh token.
func (h *Auth) RefreshToken(ctx context.Context, req *model.RefreshTokenRequest) (*model.Envelope[model.TokenPair], error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	pair, err := h.authService.RefreshToken(ctx, *req)
	if err != nil {
		return fail[model.TokenPair](ctx, h, authv1.RefreshTokenMethod, "An error occurred during token refresh", err)
	}

	return ok("Token refreshed successfully", pair), nil
}

// Logout revokes a refresh token.
func (h *Auth) Logout(ctx context.Context, req *model.RefreshTokenRequest) (*model.Envelope[model.Empty], error) {
	h.logger.Debug("Auth handler: processing logout request")

	if err := h.authService.Logout(ctx, *req); err != nil {
		return fail[model.Empty](ctx, h, authv1.LogoutMethod, "An error occurred during logout", err)
	}

	return ok("Logout successful", model.Empty{}), nil
}

// ChangePassword replaces the caller's password.
func (h *Auth) ChangePassword(ctx context.Context, req *model.ChangePasswordRequest) (*model.Envelope[model.Empty], error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.authService.ChangePassword(ctx, accountID, *req); err != nil {
		return fail[model.Empty](ctx, h, authv1.ChangePasswordMethod, "An error occurred during password change", err)
	}

	return ok("Password changed successfully", model.Empty{}), nil
}

// ResetPassword starts a password reset.
func (h *Auth) ResetPassword(ctx context.Context, req *model.ResetPasswordRequest) (*model.Envelope[model.Empty], error) {
	if err := h.authService.ResetPassword(ctx, *req); err != nil {
		return fail[model.Empty](ctx, h, authv1.ResetPasswordMethod, "An error occurred during password reset", err)
	}
	return ok("Password reset email sent", model.Empty{}), nil
}

// ConfirmResetPassword completes a password reset.
func (h *Auth) ConfirmResetPassword(ctx context.Context, req *model.ConfirmResetPasswordRequest) (*model.Envelope[model.Empty], error) {
	if err := h.authService.ConfirmResetPassword(ctx, *req); err != nil {
		return fail[model.Empty](ctx, h, authv1.ConfirmResetPasswordMethod, "An error occurred during password reset confirmation", err)
	}
	return ok("Password reset successfully", model.Empty{}), nil
}
