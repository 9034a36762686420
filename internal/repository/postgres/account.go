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

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `a.id, a.email, a.username, a.password_hash, a.full_name, a.avatar_url, a.phone_number,
	a.email_verified, a.active, a.failed_login_attempts, a.locked_until,
	a.created_at, a.modified_at, a.last_login_at,
	ARRAY(SELECT r.role FROM account_roles r WHERE r.account_id = a.id ORDER BY r.role)`

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{db: db}
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.FullName, &a.AvatarURL, &a.PhoneNumber,
		&a.EmailVerified, &a.Active, &a.FailedLoginAttempts, &a.LockedUntil,
		&a.CreatedAt, &a.ModifiedAt, &a.LastLoginAt,
		&a.Roles,
	)
	return a, err
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) GetByEmailOrUsername(ctx context.Context, identifier string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a
		WHERE LOWER(a.email) = LOWER($1) OR LOWER(a.username) = LOWER($1)
		LIMIT 1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by identifier: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	const query = `SELECT EXISTS (
		SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1) OR LOWER(username) = LOWER($2)
	)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) CreateWithSession(ctx context.Context, account model.Account, session model.RefreshToken) (model.Account, error) {
	const insertAccount = `INSERT INTO accounts (
			id, email, username, password_hash, full_name, avatar_url, phone_number,
			email_verified, active, failed_login_attempts, created_at, modified_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $11)
		RETURNING created_at, modified_at`
	const insertRole = `INSERT INTO account_roles (account_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, insertAccount,
			account.ID, account.Email, account.Username, account.PasswordHash,
			account.FullName, account.AvatarURL, account.PhoneNumber,
			account.EmailVerified, account.Active, account.CreatedAt, account.ModifiedAt,
		).Scan(&account.CreatedAt, &account.ModifiedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrConflict
			}
			return fmt.Errorf("failed to insert account: %w", err)
		}

		for _, role := range account.Roles {
			if _, err := tx.Exec(ctx, insertRole, account.ID, role); err != nil {
				return fmt.Errorf("failed to insert role: %w", err)
			}
		}

		session.AccountID = account.ID
		if err := insertRefreshToken(ctx, tx, session); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}

	return account, nil
}

func (r *AccountRepository) Update(ctx context.Context, account model.Account) error {
	const query = `UPDATE accounts SET
			full_name = $2, avatar_url = $3, phone_number = $4,
			email_verified = $5, active = $6, modified_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		account.ID, account.FullName, account.AvatarURL, account.PhoneNumber,
		account.EmailVerified, account.Active, account.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) ReplacePassword(ctx context.Context, id uuid.UUID, passwordHash string, now time.Time) error {
	const updatePassword = `UPDATE accounts SET password_hash = $2, modified_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, updatePassword, id, passwordHash, now)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) RegisterFailedLogin(ctx context.Context, id uuid.UUID, maxAttempts int, now, lockUntil time.Time) (model.LockoutState, error) {
	// Single statement so concurrent failures serialize on the row lock. A lock that
	// already expired restarts the count.
	const query = `UPDATE accounts SET
			failed_login_attempts = CASE
				WHEN locked_until IS NOT NULL AND locked_until <= $3 THEN 1
				ELSE failed_login_attempts + 1
			END,
			locked_until = CASE
				WHEN (CASE
					WHEN locked_until IS NOT NULL AND locked_until <= $3 THEN 1
					ELSE failed_login_attempts + 1
				END) >= $2 THEN $4
				WHEN locked_until IS NOT NULL AND locked_until <= $3 THEN NULL
				ELSE locked_until
			END,
			modified_at = $3
		WHERE id = $1
		RETURNING failed_login_attempts, locked_until`

	var state model.LockoutState
	err := r.db.QueryRow(ctx, query, id, maxAttempts, now, lockUntil).Scan(&state.FailedAttempts, &state.LockedUntil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.LockoutState{}, model.ErrNotFound
		}
		return model.LockoutState{}, fmt.Errorf("failed to register failed login: %w", err)
	}
	return state, nil
}

func (r *AccountRepository) RegisterSuccessfulLogin(ctx context.Context, id uuid.UUID, now time.Time) error {
	const query = `UPDATE accounts SET
			failed_login_attempts = 0, locked_until = NULL, last_login_at = $2, modified_at = $2
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("failed to register successful login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
