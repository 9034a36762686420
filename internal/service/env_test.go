package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/authkeeper/internal/guard"
	"github.com/dtroode/authkeeper/internal/hasher"
	"github.com/dtroode/authkeeper/internal/metrics"
	"github.com/dtroode/authkeeper/internal/mocks"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/testutil"
	"github.com/dtroode/authkeeper/internal/token"
)

const alicePassword = "Str0ng!Pass"

type testEnv struct {
	store    *memStore
	clock    *testutil.Clock
	storage  *mocks.Storage
	tokens   *TokenService
	auth     *Auth
	accounts *Account
	apiKeys  *APIKeys
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := testutil.MakeNoopLogger()
	clock := testutil.NewClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	store := newMemStore()
	storage := mocks.NewStorage(t)
	h := hasher.NewBcrypt(bcrypt.MinCost)
	issuer := token.NewJWT(token.Options{
		Secret:   "0123456789abcdef0123456789abcdef",
		Issuer:   "authkeeper",
		Audience: "authkeeper-clients",
		TTL:      time.Hour,
	}, log)
	g := guard.New(store, guard.DefaultMaxFailedAttempts, guard.DefaultLockoutDuration, log).WithClock(clock.Now)
	v := NewValidator()
	v.now = clock.Now

	tokens := NewTokenService(issuer, store, store, g, metrics.Noop{}, log)
	tokens.now = clock.Now
	auth := NewAuth(store, h, g, tokens, v, metrics.Noop{}, log)
	auth.now = clock.Now
	accounts := NewAccount(store, storage, v, log)
	accounts.now = clock.Now
	apiKeys := NewAPIKeys(store, store, h, v, metrics.Noop{}, log)
	apiKeys.now = clock.Now

	return &testEnv{
		store:    store,
		clock:    clock,
		storage:  storage,
		tokens:   tokens,
		auth:     auth,
		accounts: accounts,
		apiKeys:  apiKeys,
	}
}

func (e *testEnv) register(t *testing.T, username string) model.TokenPair {
	t.Helper()
	pair, err := e.auth.Register(context.Background(), model.RegisterRequest{
		Email:    username + "@example.com",
		Username: username,
		Password: alicePassword,
	})
	require.NoError(t, err)
	return pair
}
