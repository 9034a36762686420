package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

const refreshTokenColumns = `id, account_id, token_hash, expires_at, created_at, revoked_at, replaced_by`

type RefreshTokenRepository struct {
	db *Connection
}

func NewRefreshTokenRepository(db *Connection) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func scanRefreshToken(row pgx.Row) (model.RefreshToken, error) {
	var rt model.RefreshToken
	err := row.Scan(&rt.ID, &rt.AccountID, &rt.TokenHash, &rt.ExpiresAt, &rt.CreatedAt, &rt.RevokedAt, &rt.ReplacedBy)
	return rt, err
}

func insertRefreshToken(ctx context.Context, q querier, token model.RefreshToken) error {
	const query = `INSERT INTO refresh_tokens (id, account_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := q.Exec(ctx, query, token.ID, token.AccountID, token.TokenHash, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

func revokeAllRefreshTokens(ctx context.Context, q querier, accountID uuid.UUID, now time.Time) error {
	const query = `UPDATE refresh_tokens SET revoked_at = $2
		WHERE account_id = $1 AND revoked_at IS NULL`

	if _, err := q.Exec(ctx, query, accountID, now); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens by account: %w", err)
	}
	return nil
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	return insertRefreshToken(ctx, r.db, token)
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, tokenHash []byte) (model.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE token_hash = $1`

	rt, err := scanRefreshToken(r.db.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token by hash: %w", err)
	}
	return rt, nil
}

func (r *RefreshTokenRepository) GetActiveByHash(ctx context.Context, tokenHash []byte, now time.Time) (model.RefreshToken, error) {
	query := `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens
		WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > $2`

	rt, err := scanRefreshToken(r.db.QueryRow(ctx, query, tokenHash, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.RefreshToken{}, model.ErrNotFound
		}
		return model.RefreshToken{}, fmt.Errorf("failed to get active refresh token: %w", err)
	}
	return rt, nil
}

// Rotate locks the old row, checks it is still active, stores next and marks the old
// token revoked and replaced by next. Concurrent rotations of the same token serialize on
// the row lock; all but the first see it revoked and get ErrTokenInactive.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, oldHash []byte, next model.RefreshToken, now time.Time) (model.RefreshToken, error) {
	lockQuery := `SELECT ` + refreshTokenColumns + ` FROM refresh_tokens WHERE token_hash = $1 FOR UPDATE`
	const revokeQuery = `UPDATE refresh_tokens SET revoked_at = $2, replaced_by = $3 WHERE id = $1`

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		old, err := scanRefreshToken(tx.QueryRow(ctx, lockQuery, oldHash))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to lock refresh token: %w", err)
		}

		if !old.IsActive(now) {
			return model.ErrTokenInactive
		}

		next.AccountID = old.AccountID
		if next.ID == uuid.Nil {
			next.ID = uuid.New()
		}
		if err := insertRefreshToken(ctx, tx, next); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, revokeQuery, old.ID, now, next.ID); err != nil {
			return fmt.Errorf("failed to revoke rotated refresh token: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.RefreshToken{}, err
	}

	return next, nil
}

// RevokeByHash revokes the token. Already revoked tokens keep their original revocation time.
func (r *RefreshTokenRepository) RevokeByHash(ctx context.Context, tokenHash []byte, now time.Time) error {
	const query = `UPDATE refresh_tokens SET revoked_at = COALESCE(revoked_at, $2) WHERE token_hash = $1`

	tag, err := r.db.Exec(ctx, query, tokenHash, now)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *RefreshTokenRepository) RevokeAllByAccount(ctx context.Context, accountID uuid.UUID, now time.Time) error {
	return revokeAllRefreshTokens(ctx, r.db, accountID, now)
}
