package service

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/model"
)

// memStore is an in-memory account, refresh token and API key store with the same
// semantics as the postgres repositories.
type memStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]model.Account
	tokens   []model.RefreshToken
	keys     []model.APIKey
}

var (
	_ model.AccountStore      = (*memStore)(nil)
	_ model.RefreshTokenStore = (*memStore)(nil)
	_ model.APIKeyStore       = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{accounts: make(map[uuid.UUID]model.Account)}
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return a, nil
}

func (s *memStore) GetByEmailOrUsername(_ context.Context, identifier string) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, identifier) || strings.EqualFold(a.Username, identifier) {
			return a, nil
		}
	}
	return model.Account{}, model.ErrNotFound
}

func (s *memStore) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) || strings.EqualFold(a.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CreateWithSession(_ context.Context, account model.Account, session model.RefreshToken) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, account.Email) || strings.EqualFold(a.Username, account.Username) {
			return model.Account{}, model.ErrConflict
		}
	}
	s.accounts[account.ID] = account
	session.AccountID = account.ID
	s.tokens = append(s.tokens, session)
	return account, nil
}

func (s *memStore) Update(_ context.Context, account model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.ID]; !ok {
		return model.ErrNotFound
	}
	s.accounts[account.ID] = account
	return nil
}

func (s *memStore) ReplacePassword(_ context.Context, id uuid.UUID, passwordHash string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return model.ErrNotFound
	}
	a.PasswordHash = passwordHash
	a.ModifiedAt = now
	s.accounts[id] = a
	return nil
}

func (s *memStore) RegisterFailedLogin(_ context.Context, id uuid.UUID, maxAttempts int, now, lockUntil time.Time) (model.LockoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return model.LockoutState{}, model.ErrNotFound
	}
	if a.LockedUntil != nil && !a.LockedUntil.After(now) {
		a.LockedUntil = nil
		a.FailedLoginAttempts = 0
	}
	a.FailedLoginAttempts++
	if a.FailedLoginAttempts >= maxAttempts {
		until := lockUntil
		a.LockedUntil = &until
	}
	s.accounts[id] = a
	return model.LockoutState{FailedAttempts: a.FailedLoginAttempts, LockedUntil: a.LockedUntil}, nil
}

func (s *memStore) RegisterSuccessfulLogin(_ context.Context, id uuid.UUID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return model.ErrNotFound
	}
	a.FailedLoginAttempts = 0
	a.LockedUntil = nil
	a.LastLoginAt = &now
	s.accounts[id] = a
	return nil
}

func (s *memStore) Create(_ context.Context, token model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, token)
	return nil
}

func (s *memStore) findToken(tokenHash []byte) int {
	return slices.IndexFunc(s.tokens, func(t model.RefreshToken) bool {
		return bytes.Equal(t.TokenHash, tokenHash)
	})
}

func (s *memStore) GetByHash(_ context.Context, tokenHash []byte) (model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findToken(tokenHash)
	if i < 0 {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return s.tokens[i], nil
}

func (s *memStore) GetActiveByHash(_ context.Context, tokenHash []byte, now time.Time) (model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findToken(tokenHash)
	if i < 0 || !s.tokens[i].IsActive(now) {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return s.tokens[i], nil
}

func (s *memStore) Rotate(_ context.Context, oldHash []byte, next model.RefreshToken, now time.Time) (model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findToken(oldHash)
	if i < 0 {
		return model.RefreshToken{}, model.ErrNotFound
	}
	if !s.tokens[i].IsActive(now) {
		return model.RefreshToken{}, model.ErrTokenInactive
	}
	next.AccountID = s.tokens[i].AccountID
	s.tokens[i].RevokedAt = &now
	s.tokens[i].ReplacedBy = &next.ID
	s.tokens = append(s.tokens, next)
	return next, nil
}

func (s *memStore) RevokeByHash(_ context.Context, tokenHash []byte, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.findToken(tokenHash)
	if i < 0 {
		return model.ErrNotFound
	}
	if s.tokens[i].RevokedAt == nil {
		s.tokens[i].RevokedAt = &now
	}
	return nil
}

func (s *memStore) RevokeAllByAccount(_ context.Context, accountID uuid.UUID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revokeAll(accountID, now)
	return nil
}

func (s *memStore) revokeAll(accountID uuid.UUID, now time.Time) {
	for i := range s.tokens {
		if s.tokens[i].AccountID == accountID && s.tokens[i].RevokedAt == nil {
			s.tokens[i].RevokedAt = &now
		}
	}
}

func (s *memStore) activeTokens(accountID uuid.UUID, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tokens {
		if t.AccountID == accountID && t.IsActive(now) {
			n++
		}
	}
	return n
}

func (s *memStore) countActive(accountID uuid.UUID, now time.Time) int {
	n := 0
	for _, k := range s.keys {
		if k.AccountID == accountID && k.IsActive(now) {
			n++
		}
	}
	return n
}

func (s *memStore) CreateWithLimit(_ context.Context, key model.APIKey, limit int, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countActive(key.AccountID, now) >= limit {
		return model.ErrLimitExceeded
	}
	for _, k := range s.keys {
		if k.Prefix == key.Prefix {
			return model.ErrConflict
		}
	}
	s.keys = append(s.keys, key)
	return nil
}

func (s *memStore) CountActive(_ context.Context, accountID uuid.UUID, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countActive(accountID, now), nil
}

func (s *memStore) GetActiveByPrefix(_ context.Context, prefix string, now time.Time) (model.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range s.keys {
		if k.Prefix == prefix && k.IsActive(now) {
			return k, nil
		}
	}
	return model.APIKey{}, model.ErrNotFound
}

func (s *memStore) ListByAccount(_ context.Context, accountID uuid.UUID) ([]model.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.APIKey
	for _, k := range s.keys {
		if k.AccountID == accountID {
			out = append(out, k)
		}
	}
	slices.SortStableFunc(out, func(a, b model.APIKey) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *memStore) Revoke(_ context.Context, accountID, keyID uuid.UUID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, k := range s.keys {
		if k.ID == keyID && k.AccountID == accountID {
			if !k.Revoked {
				s.keys[i].Revoked = true
				s.keys[i].RevokedAt = &now
			}
			return nil
		}
	}
	return model.ErrNotFound
}

func (s *memStore) TouchLastUsed(_ context.Context, keyID uuid.UUID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, k := range s.keys {
		if k.ID == keyID {
			s.keys[i].LastUsedAt = &now
			return nil
		}
	}
	return model.ErrNotFound
}
