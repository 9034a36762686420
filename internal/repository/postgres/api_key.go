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

var _ model.APIKeyStore = (*APIKeyRepository)(nil)

const apiKeyColumns = `id, account_id, name, key_hash, prefix, scopes, expires_at, last_used_at, created_at, revoked, revoked_at`

const countActiveKeysQuery = `SELECT COUNT(*) FROM api_keys
	WHERE account_id = $1 AND NOT revoked AND (expires_at IS NULL OR expires_at > $2)`

type APIKeyRepository struct {
	db *Connection
}

func NewAPIKeyRepository(db *Connection) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

func scanAPIKey(row pgx.Row) (model.APIKey, error) {
	var k model.APIKey
	err := row.Scan(&k.ID, &k.AccountID, &k.Name, &k.KeyHash, &k.Prefix, &k.Scopes,
		&k.ExpiresAt, &k.LastUsedAt, &k.CreatedAt, &k.Revoked, &k.RevokedAt)
	return k, err
}

// CreateWithLimit locks the owning account row so concurrent creations for one account
// count and insert one at a time.
func (r *APIKeyRepository) CreateWithLimit(ctx context.Context, key model.APIKey, limit int, now time.Time) error {
	const lockAccount = `SELECT id FROM accounts WHERE id = $1 FOR UPDATE`
	const insertKey = `INSERT INTO api_keys (id, account_id, name, key_hash, prefix, scopes, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	scopes := key.Scopes
	if scopes == nil {
		scopes = []string{}
	}

	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		var id uuid.UUID
		if err := tx.QueryRow(ctx, lockAccount, key.AccountID).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		var active int
		if err := tx.QueryRow(ctx, countActiveKeysQuery, key.AccountID, now).Scan(&active); err != nil {
			return fmt.Errorf("failed to count api keys: %w", err)
		}
		if active >= limit {
			return model.ErrLimitExceeded
		}

		_, err := tx.Exec(ctx, insertKey,
			key.ID, key.AccountID, key.Name, key.KeyHash, key.Prefix, scopes, key.ExpiresAt, key.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrConflict
			}
			return fmt.Errorf("failed to insert api key: %w", err)
		}
		return nil
	})
}

func (r *APIKeyRepository) CountActive(ctx context.Context, accountID uuid.UUID, now time.Time) (int, error) {
	var active int
	if err := r.db.QueryRow(ctx, countActiveKeysQuery, accountID, now).Scan(&active); err != nil {
		return 0, fmt.Errorf("failed to count api keys: %w", err)
	}
	return active, nil
}

func (r *APIKeyRepository) GetActiveByPrefix(ctx context.Context, prefix string, now time.Time) (model.APIKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys
		WHERE prefix = $1 AND NOT revoked AND (expires_at IS NULL OR expires_at > $2)`

	k, err := scanAPIKey(r.db.QueryRow(ctx, query, prefix, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.APIKey{}, model.ErrNotFound
		}
		return model.APIKey{}, fmt.Errorf("failed to get api key by prefix: %w", err)
	}
	return k, nil
}

func (r *APIKeyRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.APIKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE account_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	keys := make([]model.APIKey, 0)
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate api keys: %w", err)
	}
	return keys, nil
}

// Revoke marks the key revoked. Revoking an already revoked key succeeds; a key owned by
// another account is ErrNotFound.
func (r *APIKeyRepository) Revoke(ctx context.Context, accountID, keyID uuid.UUID, now time.Time) error {
	const query = `UPDATE api_keys SET revoked = TRUE, revoked_at = COALESCE(revoked_at, $3)
		WHERE id = $2 AND account_id = $1`

	tag, err := r.db.Exec(ctx, query, accountID, keyID, now)
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *APIKeyRepository) TouchLastUsed(ctx context.Context, keyID uuid.UUID, now time.Time) error {
	const query = `UPDATE api_keys SET last_used_at = $2 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, keyID, now); err != nil {
		return fmt.Errorf("failed to update api key last use: %w", err)
	}
	return nil
}
