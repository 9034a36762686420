package handler

import (
	"context"

	"github.com/dtroode/authkeeper/internal/api/grpc/authv1"
	"github.com/dtroode/authkeeper/internal/model"
)

// CreateAPIKey issues a key for the caller. The raw key appears only in this response.
func (h *Auth) CreateAPIKey(ctx context.Context, req *model.CreateAPIKeyRequest) (*model.Envelope[model.CreatedAPIKey], error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	created, err := h.apiKeyService.Create(ctx, accountID, *req)
	if err != nil {
		return fail[model.CreatedAPIKey](ctx, h, authv1.CreateAPIKeyMethod, "An error occurred while creating API key", err)
	}

	return ok("API key created successfully", created), nil
}

// ListAPIKeys returns the caller's keys without key material.
func (h *Auth) ListAPIKeys(ctx context.Context, _ *model.Empty) (*model.Envelope[[]model.APIKeyInfo], error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	keys, err := h.apiKeyService.List(ctx, accountID)
	if err != nil {
		return fail[[]model.APIKeyInfo](ctx, h, authv1.ListAPIKeysMethod, "An error occurred while getting API keys", err)
	}

	return ok("Success", keys), nil
}

// RevokeAPIKey disables one of the caller's keys.
func (h *Auth) RevokeAPIKey(ctx context.Context, req *model.RevokeAPIKeyRequest) (*model.Envelope[model.Empty], error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.apiKeyService.Revoke(ctx, accountID, *req); err != nil {
		return fail[model.Empty](ctx, h, authv1.RevokeAPIKeyMethod, "An error occurred while revoking API key", err)
	}

	return ok("API key revoked successfully", model.Empty{}), nil
}

// ValidateAPIKey checks a raw key and returns the account it belongs to.
func (h *Auth) ValidateAPIKey(ctx context.Context, req *model.ValidateAPIKeyRequest) (*model.Envelope[model.APIKeyValidation], error) {
	validation, err := h.apiKeyService.Validate(ctx, *req)
	if err != nil {
		return fail[model.APIKeyValidation](ctx, h, authv1.ValidateAPIKeyMethod, "An error occurred while validating API key", err)
	}

	return ok("Success", validation), nil
}
