package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/guard"
	"github.com/dtroode/authkeeper/internal/metrics"
	"github.com/dtroode/authkeeper/internal/mocks"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/testutil"
)

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	fullName := "  Alice Liddell "
	pair, err := env.auth.Register(ctx, model.RegisterRequest{
		Email:    "Alice@Example.com",
		Username: "Alice",
		Password: alicePassword,
		FullName: &fullName,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "alice@example.com", pair.User.Email)
	assert.Equal(t, "alice", pair.User.Username)
	require.NotNil(t, pair.User.FullName)
	assert.Equal(t, "Alice Liddell", *pair.User.FullName)
	assert.Equal(t, []string{model.RoleUser}, pair.User.Roles)
	assert.True(t, pair.User.Active)

	stored, err := env.store.GetByHash(ctx, hashRefresh(pair.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, pair.User.ID, stored.AccountID)
	assert.Equal(t, env.clock.Now().Add(RegistrationSessionTTL), stored.ExpiresAt)

	account, err := env.store.GetByID(ctx, pair.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, alicePassword, account.PasswordHash)
}

func TestAuth_Register_Conflict(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")

	tests := []struct {
		name     string
		email    string
		username string
	}{
		{name: "same email different case", email: "ALICE@example.com", username: "other"},
		{name: "same username different case", email: "other@example.com", username: "ALICE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, model.RegisterRequest{
				Email:    tt.email,
				Username: tt.username,
				Password: alicePassword,
			})
			assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
		})
	}
}

func TestAuth_Register_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), model.RegisterRequest{
		Email:    "not-an-email",
		Username: "a b",
		Password: "short",
	})
	require.Error(t, err)

	apiErr := apierror.As(err)
	assert.Equal(t, apierror.KindValidationFailed, apiErr.Kind)
	assert.Contains(t, apiErr.Errors, "email must be a valid email address")
	assert.Contains(t, apiErr.Errors, "password must be at least 8 characters")
	assert.Contains(t, apiErr.Errors, "username can only contain letters, numbers, underscores, and hyphens")
	assert.Empty(t, env.store.accounts)
}

func TestAuth_Register_StoreError(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	log := testutil.MakeNoopLogger()
	a := NewAuth(accounts, mocks.NewHasher(t), nil, nil, NewValidator(), metrics.Noop{}, log)

	accounts.On("ExistsByEmailOrUsername", mock.Anything, "bob@example.com", "bob").
		Return(false, errors.New("connection refused"))

	_, err := a.Register(context.Background(), model.RegisterRequest{
		Email:    "bob@example.com",
		Username: "bob",
		Password: alicePassword,
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInternal, apierror.KindOf(err))
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")

	for _, identifier := range []string{"alice", "ALICE@example.com"} {
		pair, err := env.auth.Login(ctx, model.LoginRequest{UsernameOrEmail: identifier, Password: alicePassword})
		require.NoError(t, err, identifier)
		assert.Equal(t, "alice", pair.User.Username)
		require.NotNil(t, pair.User.LastLoginAt)

		stored, err := env.store.GetByHash(ctx, hashRefresh(pair.RefreshToken))
		require.NoError(t, err)
		assert.Equal(t, env.clock.Now().Add(LoginSessionTTL), stored.ExpiresAt)
	}

	pair, err := env.auth.Login(ctx, model.LoginRequest{UsernameOrEmail: "alice", Password: alicePassword, RememberMe: true})
	require.NoError(t, err)
	stored, err := env.store.GetByHash(ctx, hashRefresh(pair.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, env.clock.Now().Add(RememberMeSessionTTL), stored.ExpiresAt)
}

func TestAuth_Login_UnknownAndWrongPasswordLookAlike(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.register(t, "alice")

	_, unknownErr := env.auth.Login(ctx, model.LoginRequest{UsernameOrEmail: "nobody", Password: alicePassword})
	_, wrongErr := env.auth.Login(ctx, model.LoginRequest{UsernameOrEmail: "alice", Password: "Wr0ng!Pass"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, apierror.KindInvalidCredentials, apierror.KindOf(unknownErr))
	assert.Equal(t, apierror.As(unknownErr).Message, apierror.As(wrongErr).Message)
}

func TestAuth_Login_Lockout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice").User

	wrong := model.LoginRequest{UsernameOrEmail: "alice", Password: "Wr0ng!Pass"}
	right := model.LoginRequest{UsernameOrEmail: "alice", Password: alicePassword}

	for i := 1; i < guard.DefaultMaxFailedAttempts; i++ {
		_, err := env.auth.Login(ctx, wrong)
		assert.Equal(t, apierror.KindInvalidCredentials, apierror.KindOf(err), "attempt %d", i)
	}

	_, err := env.auth.Login(ctx, wrong)
	assert.Equal(t, apierror.KindAccountLocked, apierror.KindOf(err))

	account, err := env.store.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, guard.DefaultMaxFailedAttempts, account.FailedLoginAttempts)
	require.NotNil(t, account.LockedUntil)
	assert.Equal(t, env.clock.Now().Add(guard.DefaultLockoutDuration), *account.LockedUntil)

	// the correct password does not help while the lock holds
	_, err = env.auth.Login(ctx, right)
	assert.Equal(t, apierror.KindAccountLocked, apierror.KindOf(err))

	env.clock.Advance(guard.DefaultLockoutDuration)

	pair, err := env.auth.Login(ctx, right)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	account, err = env.store.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, account.FailedLoginAttempts)
	assert.Nil(t, account.LockedUntil)
}

func TestAuth_Login_ExpiredLockRestartsCount(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice").User
	wrong := model.LoginRequest{UsernameOrEmail: "alice", Password: "Wr0ng!Pass"}

	for i := 0; i < guard.DefaultMaxFailedAttempts; i++ {
		_, _ = env.auth.Login(ctx, wrong)
	}
	env.clock.Advance(guard.DefaultLockoutDuration + time.Second)

	_, err := env.auth.Login(ctx, wrong)
	assert.Equal(t, apierror.KindInvalidCredentials, apierror.KindOf(err))

	account, err := env.store.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, account.FailedLoginAttempts)
	assert.Nil(t, account.LockedUntil)
}

func TestAuth_Login_Inactive(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice").User

	account, err := env.store.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	account.Active = false
	require.NoError(t, env.store.Update(ctx, account))

	_, err = env.auth.Login(ctx, model.LoginRequest{UsernameOrEmail: "alice", Password: alicePassword})
	assert.Equal(t, apierror.KindAccountInactive, apierror.KindOf(err))

	_, err = env.auth.Login(ctx, model.LoginRequest{UsernameOrEmail: "alice", Password: "Wr0ng!Pass"})
	assert.Equal(t, apierror.KindInvalidCredentials, apierror.KindOf(err))
}

func TestAuth_Login_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(context.Background(), model.LoginRequest{})
	apiErr := apierror.As(err)
	assert.Equal(t, apierror.KindValidationFailed, apiErr.Kind)
	assert.Contains(t, apiErr.Errors, "username_or_email is required")
	assert.Contains(t, apiErr.Errors, "password is required")
}

func TestAuth_Logout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	pair := env.register(t, "alice")

	require.NoError(t, env.auth.Logout(ctx, model.RefreshTokenRequest{RefreshToken: pair.RefreshToken}))
	require.NoError(t, env.auth.Logout(ctx, model.RefreshTokenRequest{RefreshToken: pair.RefreshToken}))
	require.NoError(t, env.auth.Logout(ctx, model.RefreshTokenRequest{RefreshToken: "unknown"}))
	require.NoError(t, env.auth.Logout(ctx, model.RefreshTokenRequest{}))

	_, err := env.auth.RefreshToken(ctx, model.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.Equal(t, apierror.KindInvalidToken, apierror.KindOf(err))
}

func TestAuth_Logout_StoreError(t *testing.T) {
	store := mocks.NewRefreshTokenStore(t)
	log := testutil.MakeNoopLogger()
	tokens := NewTokenService(mocks.NewTokenIssuer(t), store, mocks.NewAccountStore(t), nil, metrics.Noop{}, log)
	a := NewAuth(mocks.NewAccountStore(t), mocks.NewHasher(t), nil, tokens, NewValidator(), metrics.Noop{}, log)

	store.On("RevokeByHash", mock.Anything, hashRefresh("some-token"), mock.Anything).
		Return(errors.New("connection reset"))

	err := a.Logout(context.Background(), model.RefreshTokenRequest{RefreshToken: "some-token"})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInternal, apierror.KindOf(err))
}

func TestAuth_ChangePassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	pair := env.register(t, "alice")
	_, err := env.auth.Login(ctx, model.LoginRequest{UsernameOrEmail: "alice", Password: alicePassword})
	require.NoError(t, err)
	require.Equal(t, 2, env.store.activeTokens(pair.User.ID, env.clock.Now()))

	err = env.auth.ChangePassword(ctx, pair.User.ID, model.ChangePasswordRequest{
		CurrentPassword: "Wr0ng!Pass",
		NewPassword:     "N3w!Password",
	})
	apiErr := apierror.As(err)
	assert.Equal(t, apierror.KindInvalidCredentials, apiErr.Kind)
	assert.Equal(t, "Current password is incorrect", apiErr.Message)

	err = env.auth.ChangePassword(ctx, pair.User.ID, model.ChangePasswordRequest{
		CurrentPassword: alicePassword,
		NewPassword:     "N3w!Password",
	})
	require.NoError(t, err)
	assert.Zero(t, env.store.activeTokens(pair.User.ID, env.clock.Now()))

	_, err = env.auth.RefreshToken(ctx, model.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.Equal(t, apierror.KindInvalidToken, apierror.KindOf(err))

	_, err = env.auth.Login(ctx, model.LoginRequest{UsernameOrEmail: "alice", Password: alicePassword})
	assert.Equal(t, apierror.KindInvalidCredentials, apierror.KindOf(err))

	_, err = env.auth.Login(ctx, model.LoginRequest{UsernameOrEmail: "alice", Password: "N3w!Password"})
	assert.NoError(t, err)
}

func TestAuth_ChangePassword_Errors(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice").User

	err := env.auth.ChangePassword(ctx, uuid.New(), model.ChangePasswordRequest{
		CurrentPassword: alicePassword,
		NewPassword:     "N3w!Password",
	})
	assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))

	err = env.auth.ChangePassword(ctx, alice.ID, model.ChangePasswordRequest{
		CurrentPassword: alicePassword,
		NewPassword:     "weak",
	})
	assert.Equal(t, apierror.KindValidationFailed, apierror.KindOf(err))
}

func TestAuth_ChangePassword_RevokeFailure(t *testing.T) {
	accounts := mocks.NewAccountStore(t)
	hasher := mocks.NewHasher(t)
	store := mocks.NewRefreshTokenStore(t)
	log := testutil.MakeNoopLogger()
	tokens := NewTokenService(mocks.NewTokenIssuer(t), store, accounts, nil, metrics.Noop{}, log)
	a := NewAuth(accounts, hasher, nil, tokens, NewValidator(), metrics.Noop{}, log)

	accountID := uuid.New()
	accounts.On("GetByID", mock.Anything, accountID).
		Return(model.Account{ID: accountID, PasswordHash: "old-hash", Active: true}, nil)
	hasher.On("Verify", alicePassword, "old-hash").Return(true)
	hasher.On("Hash", "N3w!Password").Return("new-hash", nil)
	accounts.On("ReplacePassword", mock.Anything, accountID, "new-hash", mock.Anything).Return(nil).Once()
	store.On("RevokeAllByAccount", mock.Anything, accountID, mock.Anything).
		Return(errors.New("connection reset")).Once()

	err := a.ChangePassword(context.Background(), accountID, model.ChangePasswordRequest{
		CurrentPassword: alicePassword,
		NewPassword:     "N3w!Password",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.KindInternal, apierror.KindOf(err))
}

func TestAuth_ResetPassword(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.auth.ResetPassword(ctx, model.ResetPasswordRequest{Email: "alice@example.com"})
	assert.Equal(t, apierror.KindUnimplemented, apierror.KindOf(err))

	err = env.auth.ResetPassword(ctx, model.ResetPasswordRequest{Email: "nope"})
	assert.Equal(t, apierror.KindValidationFailed, apierror.KindOf(err))

	err = env.auth.ConfirmResetPassword(ctx, model.ConfirmResetPasswordRequest{
		Token:       "token",
		Email:       "alice@example.com",
		NewPassword: "N3w!Password",
	})
	assert.Equal(t, apierror.KindUnimplemented, apierror.KindOf(err))
}
