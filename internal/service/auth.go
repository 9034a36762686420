package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/guard"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// Auth orchestrates registration, login and password management.
type Auth struct {
	accounts  model.AccountStore
	hasher    model.Hasher
	guard     *guard.Guard
	tokens    *TokenService
	validator *Validator
	metrics   model.AuthMetrics
	logger    *logger.Logger
	now       func() time.Time
}

func NewAuth(
	accounts model.AccountStore,
	hasher model.Hasher,
	guard *guard.Guard,
	tokens *TokenService,
	validator *Validator,
	metrics model.AuthMetrics,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accounts:  accounts,
		hasher:    hasher,
		guard:     guard,
		tokens:    tokens,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Register creates an account with the User role and starts its first session.
func (a *Auth) Register(ctx context.Context, req model.RegisterRequest) (model.TokenPair, error) {
	if err := a.validator.Struct(req); err != nil {
		return model.TokenPair{}, err
	}

	email := normalize(req.Email)
	username := normalize(req.Username)

	exists, err := a.accounts.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		a.logger.Error("Auth service: failed to check existing account",
			"email", email,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to check existing account: %w", err)
	}
	if exists {
		a.logger.Info("Auth service: account already exists",
			"email", email,
			"username", username)
		return model.TokenPair{}, apierror.NewErrConflict()
	}

	passwordHash, err := a.hasher.Hash(req.Password)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := a.now()
	account := model.Account{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		FullName:     nonEmpty(req.FullName),
		PhoneNumber:  nonEmpty(req.PhoneNumber),
		Active:       true,
		Roles:        []string{model.RoleUser},
		CreatedAt:    now,
		ModifiedAt:   now,
	}

	pair, session, err := a.tokens.mint(account, RegistrationSessionTTL)
	if err != nil {
		return model.TokenPair{}, err
	}

	created, err := a.accounts.CreateWithSession(ctx, account, session)
	if errors.Is(err, model.ErrConflict) {
		return model.TokenPair{}, apierror.NewErrConflict()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create account",
			"email", email,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to create account: %w", err)
	}

	pair.User = model.NewProfile(created)
	a.metrics.ObserveRegistration()
	a.logger.Info("Auth service: account registered",
		"account_id", created.ID,
		"username", created.Username)

	return pair, nil
}

// Login authenticates by email or username and password.
//
// Unknown identifiers and wrong passwords both yield InvalidCredentials. The failure that
// reaches the attempt limit yields AccountLocked, as does any attempt while the lock holds.
func (a *Auth) Login(ctx context.Context, req model.LoginRequest) (model.TokenPair, error) {
	if err := a.validator.Struct(req); err != nil {
		return model.TokenPair{}, err
	}

	account, err := a.accounts.GetByEmailOrUsername(ctx, normalize(req.UsernameOrEmail))
	if errors.Is(err, model.ErrNotFound) {
		a.metrics.ObserveLogin(model.OutcomeFailure)
		return model.TokenPair{}, apierror.NewErrInvalidCredentials()
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to get account: %w", err)
	}

	if err := a.guard.CheckLock(account); err != nil {
		a.logger.Info("Auth service: login attempt on locked account",
			"account_id", account.ID)
		a.metrics.ObserveLogin(model.OutcomeLocked)
		return model.TokenPair{}, err
	}

	if !a.hasher.Verify(req.Password, account.PasswordHash) {
		locked, err := a.guard.RecordFailure(ctx, account.ID)
		if err != nil {
			return model.TokenPair{}, err
		}
		if locked {
			a.metrics.ObserveLockout()
			a.metrics.ObserveLogin(model.OutcomeLocked)
			return model.TokenPair{}, apierror.NewErrAccountLocked()
		}
		a.metrics.ObserveLogin(model.OutcomeFailure)
		return model.TokenPair{}, apierror.NewErrInvalidCredentials()
	}

	if err := a.guard.CheckActive(account); err != nil {
		a.metrics.ObserveLogin(model.OutcomeFailure)
		return model.TokenPair{}, err
	}

	if err := a.guard.RecordSuccess(ctx, account.ID); err != nil {
		return model.TokenPair{}, err
	}
	now := a.now()
	account.FailedLoginAttempts = 0
	account.LockedUntil = nil
	account.LastLoginAt = &now

	ttl := LoginSessionTTL
	if req.RememberMe {
		ttl = RememberMeSessionTTL
	}

	pair, err := a.tokens.Issue(ctx, account, ttl)
	if err != nil {
		return model.TokenPair{}, err
	}

	a.metrics.ObserveLogin(model.OutcomeSuccess)
	a.logger.Info("Auth service: login succeeded",
		"account_id", account.ID,
		"remember_me", req.RememberMe)

	return pair, nil
}

// RefreshToken exchanges a refresh token for a new pair.
func (a *Auth) RefreshToken(ctx context.Context, req model.RefreshTokenRequest) (model.TokenPair, error) {
	if err := a.validator.Struct(req); err != nil {
		return model.TokenPair{}, err
	}
	return a.tokens.Refresh(ctx, req.RefreshToken)
}

// Logout revokes the refresh token. It succeeds whether or not the token exists.
func (a *Auth) Logout(ctx context.Context, req model.RefreshTokenRequest) error {
	return a.tokens.Revoke(ctx, req.RefreshToken)
}

// ChangePassword replaces the password and ends every session of the account.
func (a *Auth) ChangePassword(ctx context.Context, accountID uuid.UUID, req model.ChangePasswordRequest) error {
	if err := a.validator.Struct(req); err != nil {
		return err
	}

	account, err := a.accounts.GetByID(ctx, accountID)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	if !a.hasher.Verify(req.CurrentPassword, account.PasswordHash) {
		return apierror.NewErrIncorrectPassword()
	}

	passwordHash, err := a.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.accounts.ReplacePassword(ctx, accountID, passwordHash, a.now()); err != nil {
		a.logger.Error("Auth service: failed to replace password",
			"account_id", accountID,
			"error", err.Error())
		return fmt.Errorf("failed to replace password: %w", err)
	}

	// Sessions are revoked after the hash is replaced, so a login racing the change
	// cannot leave a session behind that was opened with the old password.
	if err := a.tokens.RevokeAll(ctx, accountID); err != nil {
		a.logger.Error("Auth service: failed to revoke sessions after password change",
			"account_id", accountID,
			"error", err.Error())
		return err
	}

	a.logger.Info("Auth service: password changed, sessions revoked",
		"account_id", accountID)
	return nil
}

// ResetPassword is not available until a delivery channel for reset tokens exists.
func (a *Auth) ResetPassword(_ context.Context, req model.ResetPasswordRequest) error {
	if err := a.validator.Struct(req); err != nil {
		return err
	}
	return apierror.NewErrNotImplemented("Password reset")
}

// ConfirmResetPassword is not available until a delivery channel for reset tokens exists.
func (a *Auth) ConfirmResetPassword(_ context.Context, req model.ConfirmResetPasswordRequest) error {
	if err := a.validator.Struct(req); err != nil {
		return err
	}
	return apierror.NewErrNotImplemented("Password reset confirmation")
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
