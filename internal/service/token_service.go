package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/guard"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// Refresh token lifetimes per issuing operation.
const (
	RegistrationSessionTTL = 30 * 24 * time.Hour
	LoginSessionTTL        = 7 * 24 * time.Hour
	RememberMeSessionTTL   = 30 * 24 * time.Hour
	RefreshedSessionTTL    = 7 * 24 * time.Hour
)

// TokenService issues, rotates and revokes token pairs.
type TokenService struct {
	issuer   model.TokenIssuer
	store    model.RefreshTokenStore
	accounts model.AccountStore
	guard    *guard.Guard
	metrics  model.AuthMetrics
	logger   *logger.Logger
	now      func() time.Time
}

func NewTokenService(
	issuer model.TokenIssuer,
	store model.RefreshTokenStore,
	accounts model.AccountStore,
	guard *guard.Guard,
	metrics model.AuthMetrics,
	logger *logger.Logger,
) *TokenService {
	return &TokenService{
		issuer:   issuer,
		store:    store,
		accounts: accounts,
		guard:    guard,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// mint creates a token pair for account and the refresh token record to persist.
// Nothing is stored.
func (s *TokenService) mint(account model.Account, ttl time.Duration) (model.TokenPair, model.RefreshToken, error) {
	access, expiresAt, err := s.issuer.IssueAccessToken(account)
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.issuer.IssueRefreshToken()
	if err != nil {
		return model.TokenPair{}, model.RefreshToken{}, fmt.Errorf("issue refresh: %w", err)
	}

	now := s.now()
	record := model.RefreshToken{
		ID:        uuid.New(),
		AccountID: account.ID,
		TokenHash: hashRefresh(refresh),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
		User:         model.NewProfile(account),
	}, record, nil
}

// Issue creates a token pair for account and persists its refresh token.
func (s *TokenService) Issue(ctx context.Context, account model.Account, ttl time.Duration) (model.TokenPair, error) {
	pair, record, err := s.mint(account, ttl)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.Create(ctx, record); err != nil {
		return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return pair, nil
}

// Refresh exchanges an active refresh token for a new pair. The presented token is
// revoked and linked to its successor; any later use of it fails with InvalidToken.
func (s *TokenService) Refresh(ctx context.Context, presented string) (model.TokenPair, error) {
	pair, err := s.refresh(ctx, presented)
	if err != nil {
		s.metrics.ObserveRefresh(model.OutcomeFailure)
		return model.TokenPair{}, err
	}
	s.metrics.ObserveRefresh(model.OutcomeSuccess)
	return pair, nil
}

func (s *TokenService) refresh(ctx context.Context, presented string) (model.TokenPair, error) {
	if !s.issuer.IsWellFormedRefreshToken(presented) {
		return model.TokenPair{}, apierror.NewErrInvalidToken()
	}

	oldHash := hashRefresh(presented)
	current, err := s.store.GetActiveByHash(ctx, oldHash, s.now())
	if errors.Is(err, model.ErrNotFound) {
		s.warnOnReuse(ctx, oldHash)
		return model.TokenPair{}, apierror.NewErrInvalidToken()
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("get refresh token: %w", err)
	}

	account, err := s.accounts.GetByID(ctx, current.AccountID)
	if errors.Is(err, model.ErrNotFound) {
		return model.TokenPair{}, apierror.NewErrInvalidToken()
	}
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("get account: %w", err)
	}

	if err := s.guard.CheckActive(account); err != nil {
		return model.TokenPair{}, err
	}

	pair, next, err := s.mint(account, RefreshedSessionTTL)
	if err != nil {
		return model.TokenPair{}, err
	}

	if _, err := s.store.Rotate(ctx, oldHash, next, s.now()); err != nil {
		if errors.Is(err, model.ErrTokenInactive) || errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("Token service: refresh token lost rotation race",
				"account_id", account.ID)
			return model.TokenPair{}, apierror.NewErrInvalidToken()
		}
		return model.TokenPair{}, fmt.Errorf("rotate refresh token: %w", err)
	}

	s.logger.Debug("Token service: refresh token rotated",
		"account_id", account.ID,
		"token_id", next.ID)

	return pair, nil
}

// warnOnReuse logs presentation of a token that was already rotated.
func (s *TokenService) warnOnReuse(ctx context.Context, tokenHash []byte) {
	stored, err := s.store.GetByHash(ctx, tokenHash)
	if err != nil {
		return
	}
	if stored.ReplacedBy != nil {
		s.logger.Warn("Token service: rotated refresh token presented again",
			"account_id", stored.AccountID,
			"token_id", stored.ID,
			"replaced_by", *stored.ReplacedBy)
	}
}

// Revoke revokes the presented refresh token if it exists. Unknown tokens are ignored.
func (s *TokenService) Revoke(ctx context.Context, presented string) error {
	if presented == "" {
		return nil
	}
	err := s.store.RevokeByHash(ctx, hashRefresh(presented), s.now())
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAll ends every session of the account.
func (s *TokenService) RevokeAll(ctx context.Context, accountID uuid.UUID) error {
	if err := s.store.RevokeAllByAccount(ctx, accountID, s.now()); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}
