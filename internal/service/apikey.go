package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

const (
	apiKeyTag          = "ak"
	apiKeyPrefixBytes  = 6
	apiKeySecretBytes  = 32
	apiKeyCreateTries  = 3
	apiKeyPrefixLength = len(apiKeyTag) + 2*apiKeyPrefixBytes
)

// APIKeys manages the API key lifecycle.
type APIKeys struct {
	keys      model.APIKeyStore
	accounts  model.AccountStore
	hasher    model.Hasher
	validator *Validator
	metrics   model.AuthMetrics
	logger    *logger.Logger
	now       func() time.Time
}

func NewAPIKeys(
	keys model.APIKeyStore,
	accounts model.AccountStore,
	hasher model.Hasher,
	validator *Validator,
	metrics model.AuthMetrics,
	logger *logger.Logger,
) *APIKeys {
	return &APIKeys{
		keys:      keys,
		accounts:  accounts,
		hasher:    hasher,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// generateAPIKey returns a key of the form <prefix>_<secret>. The prefix is "ak" followed
// by hex characters, so it never contains the separator.
func generateAPIKey() (key, prefix string, err error) {
	prefixBytes := make([]byte, apiKeyPrefixBytes)
	if _, err := rand.Read(prefixBytes); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	secret := make([]byte, apiKeySecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	prefix = apiKeyTag + hex.EncodeToString(prefixBytes)
	return prefix + "_" + base64.RawURLEncoding.EncodeToString(secret), prefix, nil
}

// splitAPIKey returns the text before the first underscore.
func splitAPIKey(raw string) (string, bool) {
	prefix, _, found := strings.Cut(raw, "_")
	if !found || prefix == "" {
		return "", false
	}
	return prefix, true
}

// Create issues a new key for the account. The raw key is only ever returned here.
func (s *APIKeys) Create(ctx context.Context, accountID uuid.UUID, req model.CreateAPIKeyRequest) (model.CreatedAPIKey, error) {
	if err := s.validator.Struct(req); err != nil {
		return model.CreatedAPIKey{}, err
	}

	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.CreatedAPIKey{}, apierror.NewErrUserNotFound()
		}
		return model.CreatedAPIKey{}, fmt.Errorf("failed to get account: %w", err)
	}

	active, err := s.keys.CountActive(ctx, accountID, s.now())
	if err != nil {
		return model.CreatedAPIKey{}, fmt.Errorf("failed to count api keys: %w", err)
	}
	if active >= model.MaxActiveAPIKeys {
		return model.CreatedAPIKey{}, apierror.NewErrAPIKeyLimit(model.MaxActiveAPIKeys)
	}

	for attempt := 1; ; attempt++ {
		raw, prefix, err := generateAPIKey()
		if err != nil {
			return model.CreatedAPIKey{}, err
		}
		keyHash, err := s.hasher.Hash(raw)
		if err != nil {
			return model.CreatedAPIKey{}, fmt.Errorf("failed to hash api key: %w", err)
		}

		now := s.now()
		key := model.APIKey{
			ID:        uuid.New(),
			AccountID: accountID,
			Name:      strings.TrimSpace(req.Name),
			KeyHash:   keyHash,
			Prefix:    prefix,
			Scopes:    req.Scopes,
			ExpiresAt: req.ExpiresAt,
			CreatedAt: now,
		}

		err = s.keys.CreateWithLimit(ctx, key, model.MaxActiveAPIKeys, now)
		switch {
		case err == nil:
			s.logger.Info("API key service: key created",
				"account_id", accountID,
				"key_id", key.ID,
				"prefix", prefix)
			return model.CreatedAPIKey{APIKeyInfo: model.NewAPIKeyInfo(key, now), APIKey: raw}, nil
		case errors.Is(err, model.ErrLimitExceeded):
			return model.CreatedAPIKey{}, apierror.NewErrAPIKeyLimit(model.MaxActiveAPIKeys)
		case errors.Is(err, model.ErrConflict) && attempt < apiKeyCreateTries:
			s.logger.Warn("API key service: prefix collision, retrying", "attempt", attempt)
		default:
			return model.CreatedAPIKey{}, fmt.Errorf("failed to create api key: %w", err)
		}
	}
}

// List returns key metadata of the account, newest first.
func (s *APIKeys) List(ctx context.Context, accountID uuid.UUID) ([]model.APIKeyInfo, error) {
	keys, err := s.keys.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}

	now := s.now()
	infos := make([]model.APIKeyInfo, 0, len(keys))
	for _, k := range keys {
		infos = append(infos, model.NewAPIKeyInfo(k, now))
	}
	return infos, nil
}

// Revoke disables a key owned by the account.
func (s *APIKeys) Revoke(ctx context.Context, accountID uuid.UUID, req model.RevokeAPIKeyRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}

	keyID, err := uuid.Parse(req.KeyID)
	if err != nil {
		return apierror.NewErrValidation([]string{"key_id must be a valid UUID"})
	}

	err = s.keys.Revoke(ctx, accountID, keyID, s.now())
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrAPIKeyNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}

	s.logger.Info("API key service: key revoked",
		"account_id", accountID,
		"key_id", keyID)
	return nil
}

// Validate checks a raw key. Every rejection is the same InvalidAPIKey error.
func (s *APIKeys) Validate(ctx context.Context, req model.ValidateAPIKeyRequest) (model.APIKeyValidation, error) {
	key, account, err := s.resolve(ctx, req.APIKey)
	if err != nil {
		s.metrics.ObserveAPIKeyValidation(model.OutcomeFailure)
		return model.APIKeyValidation{}, err
	}
	s.metrics.ObserveAPIKeyValidation(model.OutcomeSuccess)

	scopes := key.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	return model.APIKeyValidation{
		User:   model.NewProfile(account),
		Scopes: scopes,
		KeyID:  key.ID.String(),
	}, nil
}

// Authenticate resolves a raw key to the principal it acts for.
func (s *APIKeys) Authenticate(ctx context.Context, raw string) (model.Principal, error) {
	key, account, err := s.resolve(ctx, raw)
	if err != nil {
		s.metrics.ObserveAPIKeyValidation(model.OutcomeFailure)
		return model.Principal{}, err
	}
	s.metrics.ObserveAPIKeyValidation(model.OutcomeSuccess)

	var fullName string
	if account.FullName != nil {
		fullName = *account.FullName
	}
	return model.Principal{
		AccountID:     account.ID,
		Username:      account.Username,
		Email:         account.Email,
		FullName:      fullName,
		EmailVerified: account.EmailVerified,
		Active:        account.Active,
		Roles:         account.Roles,
		Scopes:        key.Scopes,
		AuthType:      model.AuthTypeAPIKey,
	}, nil
}

func (s *APIKeys) resolve(ctx context.Context, raw string) (model.APIKey, model.Account, error) {
	prefix, ok := splitAPIKey(raw)
	if !ok {
		return model.APIKey{}, model.Account{}, apierror.NewErrInvalidAPIKey()
	}

	now := s.now()
	key, err := s.keys.GetActiveByPrefix(ctx, prefix, now)
	if errors.Is(err, model.ErrNotFound) {
		return model.APIKey{}, model.Account{}, apierror.NewErrInvalidAPIKey()
	}
	if err != nil {
		return model.APIKey{}, model.Account{}, fmt.Errorf("failed to get api key: %w", err)
	}

	if !s.hasher.Verify(raw, key.KeyHash) {
		s.logger.Warn("API key service: hash mismatch", "prefix", prefix)
		return model.APIKey{}, model.Account{}, apierror.NewErrInvalidAPIKey()
	}

	account, err := s.accounts.GetByID(ctx, key.AccountID)
	if errors.Is(err, model.ErrNotFound) {
		return model.APIKey{}, model.Account{}, apierror.NewErrInvalidAPIKey()
	}
	if err != nil {
		return model.APIKey{}, model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	if !account.Active {
		return model.APIKey{}, model.Account{}, apierror.NewErrInvalidAPIKey()
	}

	if err := s.keys.TouchLastUsed(ctx, key.ID, now); err != nil {
		s.logger.Warn("API key service: failed to stamp last use",
			"key_id", key.ID,
			"error", err.Error())
	} else {
		key.LastUsedAt = &now
	}

	return key, account, nil
}
