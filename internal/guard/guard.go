// Package guard implements the account lockout state machine.
//
// An account is Unlocked or Locked(until). Each failed password check increments a counter
// in storage; reaching the limit moves the account to Locked(now+duration). A successful
// check resets the counter. Lock expiry is lazy: once until <= now the account is treated
// as Unlocked again, no sweeper runs.
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

const (
	DefaultMaxFailedAttempts = 5
	DefaultLockoutDuration   = 30 * time.Minute
)

// Guard gates login attempts on lockout and activity state.
type Guard struct {
	store        model.LockoutStore
	maxAttempts  int
	lockDuration time.Duration
	logger       *logger.Logger
	now          func() time.Time
}

// New creates a Guard. Non-positive limits fall back to the defaults.
func New(store model.LockoutStore, maxAttempts int, lockDuration time.Duration, logger *logger.Logger) *Guard {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxFailedAttempts
	}
	if lockDuration <= 0 {
		lockDuration = DefaultLockoutDuration
	}
	return &Guard{
		store:        store,
		maxAttempts:  maxAttempts,
		lockDuration: lockDuration,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the time source.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// CheckLock returns AccountLocked while the account's lock is in force.
func (g *Guard) CheckLock(account model.Account) error {
	if account.IsLocked(g.now()) {
		return apierror.NewErrAccountLocked()
	}
	return nil
}

// CheckActive returns AccountInactive for deactivated accounts.
func (g *Guard) CheckActive(account model.Account) error {
	if !account.Active {
		return apierror.NewErrAccountInactive()
	}
	return nil
}

// RecordFailure counts a failed password check and reports whether it locked the account.
func (g *Guard) RecordFailure(ctx context.Context, accountID uuid.UUID) (bool, error) {
	now := g.now()
	state, err := g.store.RegisterFailedLogin(ctx, accountID, g.maxAttempts, now, now.Add(g.lockDuration))
	if err != nil {
		return false, fmt.Errorf("failed to register failed login: %w", err)
	}

	locked := state.LockedUntil != nil && state.LockedUntil.After(now)
	if locked {
		g.logger.Warn("Account guard: account locked",
			"account_id", accountID,
			"failed_attempts", state.FailedAttempts,
			"locked_until", *state.LockedUntil,
		)
	}
	return locked, nil
}

// RecordSuccess resets the failure counter, clears the lock and stamps the login time.
func (g *Guard) RecordSuccess(ctx context.Context, accountID uuid.UUID) error {
	if err := g.store.RegisterSuccessfulLogin(ctx, accountID, g.now()); err != nil {
		return fmt.Errorf("failed to register successful login: %w", err)
	}
	return nil
}
