package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/model"
)

const (
	MaxAvatarBytes     = 5 << 20
	MaxAvatarDimension = 4096
	AvatarSize         = 256
)

var allowedAvatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
}

// AvatarKey is the object key of one avatar version. Every upload gets a new version so
// cached copies of the previous public URL go stale.
func AvatarKey(id, version uuid.UUID) string {
	return avatarPrefix(id) + version.String() + ".png"
}

func avatarPrefix(id uuid.UUID) string {
	return fmt.Sprintf("avatars/%s/", id)
}

// UploadAvatar crops the image to a square thumbnail, stores it as PNG and points the
// profile's avatar URL at it.
func (s *Account) UploadAvatar(ctx context.Context, id uuid.UUID, req model.UploadAvatarRequest) (model.Profile, error) {
	if len(req.Image) == 0 {
		return model.Profile{}, apierror.NewErrValidation([]string{"image is required"})
	}
	if len(req.Image) > MaxAvatarBytes {
		return model.Profile{}, apierror.NewErrValidation([]string{fmt.Sprintf("image cannot exceed %d bytes", MaxAvatarBytes)})
	}
	if contentType := http.DetectContentType(req.Image); !allowedAvatarTypes[contentType] {
		return model.Profile{}, apierror.NewErrValidation([]string{"image must be PNG, JPEG or GIF"})
	}

	account, err := s.get(ctx, id)
	if err != nil {
		return model.Profile{}, err
	}

	// Header only; the pixel buffer is not allocated until the size is known.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(req.Image))
	if err != nil {
		return model.Profile{}, apierror.NewErrValidation([]string{"image could not be decoded"})
	}
	if cfg.Width > MaxAvatarDimension || cfg.Height > MaxAvatarDimension {
		return model.Profile{}, apierror.NewErrValidation([]string{
			fmt.Sprintf("image dimensions cannot exceed %dx%d pixels", MaxAvatarDimension, MaxAvatarDimension),
		})
	}

	src, _, err := image.Decode(bytes.NewReader(req.Image))
	if err != nil {
		return model.Profile{}, apierror.NewErrValidation([]string{"image could not be decoded"})
	}

	thumb := imaging.Fill(src, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return model.Profile{}, fmt.Errorf("failed to encode avatar: %w", err)
	}

	key := AvatarKey(id, uuid.New())
	if err := s.storage.Upload(ctx, key, &buf, int64(buf.Len()), "image/png"); err != nil {
		s.logger.Error("Account service: failed to upload avatar",
			"account_id", id,
			"error", err.Error())
		return model.Profile{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	previous := s.ownedAvatarKey(id, account.AvatarURL)

	url := s.storage.URL(key)
	account.AvatarURL = &url
	account.ModifiedAt = s.now()

	if err := s.accounts.Update(ctx, account); err != nil {
		s.deleteAvatar(ctx, id, key)
		if errors.Is(err, model.ErrNotFound) {
			return model.Profile{}, apierror.NewErrUserNotFound()
		}
		return model.Profile{}, fmt.Errorf("failed to update account: %w", err)
	}

	if previous != "" {
		s.deleteAvatar(ctx, id, previous)
	}

	s.logger.Info("Account service: avatar uploaded",
		"account_id", id,
		"key", key)
	return model.NewProfile(account), nil
}

// ownedAvatarKey returns the object key behind avatarURL when it points into this
// account's avatar prefix, and "" for external or missing URLs.
func (s *Account) ownedAvatarKey(id uuid.UUID, avatarURL *string) string {
	if avatarURL == nil {
		return ""
	}
	prefix := avatarPrefix(id)
	rest, ok := strings.CutPrefix(*avatarURL, s.storage.URL(prefix))
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return prefix + rest
}

// deleteAvatar removes an object that is no longer referenced. Failure leaves an orphan
// behind and is not reported to the caller.
func (s *Account) deleteAvatar(ctx context.Context, id uuid.UUID, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("Account service: failed to delete avatar object",
			"account_id", id,
			"key", key,
			"error", err.Error())
	}
}
