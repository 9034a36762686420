package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

// Account serves profile reads and updates.
type Account struct {
	accounts  model.AccountStore
	storage   model.Storage
	validator *Validator
	logger    *logger.Logger
	now       func() time.Time
}

func NewAccount(accounts model.AccountStore, storage model.Storage, validator *Validator, logger *logger.Logger) *Account {
	return &Account{
		accounts:  accounts,
		storage:   storage,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Account) get(ctx context.Context, id uuid.UUID) (model.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Account{}, apierror.NewErrUserNotFound()
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetAccountInfo returns the profile of the account.
func (s *Account) GetAccountInfo(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	account, err := s.get(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}
	return model.NewProfile(account), nil
}

// UpdateAccountInfo applies the non-empty fields of req.
func (s *Account) UpdateAccountInfo(ctx context.Context, id uuid.UUID, req model.UpdateAccountRequest) (model.Profile, error) {
	if err := s.validator.Struct(req); err != nil {
		return model.Profile{}, err
	}

	account, err := s.get(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}

	if req.FullName != "" {
		account.FullName = &req.FullName
	}
	if req.AvatarURL != "" {
		account.AvatarURL = &req.AvatarURL
	}
	if req.PhoneNumber != "" {
		account.PhoneNumber = &req.PhoneNumber
	}
	account.ModifiedAt = s.now()

	if err := s.accounts.Update(ctx, account); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Profile{}, apierror.NewErrUserNotFound()
		}
		return model.Profile{}, fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.Info("Account service: profile updated", "account_id", id)
	return model.NewProfile(account), nil
}
