package handler

import (
	"context"

	"github.com/dtroode/authkeeper/internal/api/grpc/authv1"
	"github.com/dtroode/authkeeper/internal/model"
)

// GetAccountInfo returns the caller's profile.
func (h *Auth) GetAccountInfo(ctx context.Context, _ *model.Empty) (*model.Envelope[model.Profile], error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := h.accountService.GetAccountInfo(ctx, accountID)
	if err != nil {
		return fail[model.Profile](ctx, h, authv1.GetAccountInfoMethod, "An error occurred while getting user info", err)
	}

	return ok("Success", profile), nil
}

// UpdateAccountInfo changes the caller's profile fields.
func (h *Auth) UpdateAccountInfo(ctx context.Context, req *model.UpdateAccountRequest) (*model.Envelope[model.Profile], error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := h.accountService.UpdateAccountInfo(ctx, accountID, *req)
	if err != nil {
		return fail[model.Profile](ctx, h, authv1.UpdateAccountInfoMethod, "An error occurred while updating user information", err)
	}

	return ok("User information updated successfully", profile), nil
}

// UploadAvatar stores a new avatar for the caller.
func (h *Auth) UploadAvatar(ctx context.Context, req *model.UploadAvatarRequest) (*model.Envelope[model.Profile], error) {
	accountID, err := h.accountID(ctx)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("Auth handler: processing avatar upload",
		"account_id", accountID,
		"size", len(req.Image))

	profile, err := h.accountService.UploadAvatar(ctx, accountID, *req)
	if err != nil {
		return fail[model.Profile](ctx, h, authv1.UploadAvatarMethod, "An error occurred while uploading avatar", err)
	}

	return ok("Avatar uploaded successfully", profile), nil
}
