package router

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/dtroode/authkeeper/internal/api/grpc/authv1"
	grpcctx "github.com/dtroode/authkeeper/internal/api/grpc/context"
	"github.com/dtroode/authkeeper/internal/api/grpc/handler"
	"github.com/dtroode/authkeeper/internal/api/grpc/middleware"
	"github.com/dtroode/authkeeper/internal/apierror"
	"github.com/dtroode/authkeeper/internal/mocks"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/testutil"
)

type testServer struct {
	auth     *mocks.AuthService
	accounts *mocks.AccountService
	apiKeys  *mocks.APIKeyService
	verifier *mocks.TokenVerifier
	lookup   *mocks.AccountStore
	keyAuth  *mocks.APIKeyAuthenticator
	health   *health.Server
	client   *authv1.AuthClient
	conn     *grpc.ClientConn
}

func panicToInternal(_ context.Context, p any) error {
	return status.Errorf(codes.Internal, "panic: %v", p)
}

func startServer(t *testing.T, opts Options) *testServer {
	t.Helper()

	ts := &testServer{
		auth:     mocks.NewAuthService(t),
		accounts: mocks.NewAccountService(t),
		apiKeys:  mocks.NewAPIKeyService(t),
		verifier: mocks.NewTokenVerifier(t),
		lookup:   mocks.NewAccountStore(t),
		keyAuth:  mocks.NewAPIKeyAuthenticator(t),
		health:   health.NewServer(),
	}

	lg := testutil.MakeNoopLogger()
	cm := grpcctx.NewManager()
	h := handler.NewAuth(ts.auth, ts.accounts, ts.apiKeys, cm, mocks.NewErrorReporter(t), lg)
	authenticate := middleware.NewAuthenticate(ts.verifier, ts.lookup, ts.keyAuth, cm, lg)

	s := New(h, authenticate, ts.health, panicToInternal, opts, lg).Register()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ts.conn = conn
	ts.client = authv1.NewAuthClient(conn)
	return ts
}

var (
	generous = Options{LoginRatePerMinute: 6000, LoginRateBurst: 100}

	errInvalidKey     = apierror.NewErrInvalidAPIKey()
	errBadCredentials = apierror.NewErrInvalidCredentials()
)

func TestRouter_PublicMethod(t *testing.T) {
	t.Parallel()

	ts := startServer(t, generous)
	req := model.RegisterRequest{Email: "alice@example.com", Username: "alice", Password: "Str0ng!Pass"}
	expiresAt := time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)
	ts.auth.On("Register", mock.Anything, req).
		Return(model.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresAt: expiresAt}, nil)

	resp, err := ts.client.Register(context.Background(), &req)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "User registered successfully", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "access", resp.Data.AccessToken)
	assert.Equal(t, "refresh", resp.Data.RefreshToken)
	assert.True(t, expiresAt.Equal(resp.Data.ExpiresAt))
}

func TestRouter_FailedEnvelopeIsNotAnRPCError(t *testing.T) {
	t.Parallel()

	ts := startServer(t, generous)
	ts.apiKeys.On("Validate", mock.Anything, model.ValidateAPIKeyRequest{APIKey: "nope"}).
		Return(model.APIKeyValidation{}, errInvalidKey)

	resp, err := ts.client.ValidateAPIKey(context.Background(), &model.ValidateAPIKeyRequest{APIKey: "nope"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "InvalidAPIKey", resp.Code)
	assert.Nil(t, resp.Data)
}

func TestRouter_ProtectedMethodRequiresCredentials(t *testing.T) {
	t.Parallel()

	ts := startServer(t, generous)

	_, err := ts.client.GetAccountInfo(context.Background(), &model.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ts.verifier.On("VerifyAccessToken", "expired").Return(model.Principal{}, false)
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer expired")
	_, err = ts.client.GetAccountInfo(ctx, &model.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRouter_BearerReachesHandler(t *testing.T) {
	t.Parallel()

	ts := startServer(t, generous)
	accountID := uuid.New()
	ts.verifier.On("VerifyAccessToken", "good").
		Return(model.Principal{AccountID: accountID, Username: "alice", AuthType: model.AuthTypeBearer}, true)
	ts.lookup.On("GetByID", mock.Anything, accountID).
		Return(model.Account{ID: accountID, Active: true}, nil)
	ts.accounts.On("GetAccountInfo", mock.Anything, accountID).
		Return(model.Profile{ID: accountID, Username: "alice", Roles: []string{model.RoleUser}}, nil)

	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer good")
	resp, err := ts.client.GetAccountInfo(ctx, &model.Empty{})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, accountID, resp.Data.ID)
	assert.Equal(t, []string{model.RoleUser}, resp.Data.Roles)
}

func TestRouter_DeactivatedAccountLosesBearerAccess(t *testing.T) {
	t.Parallel()

	ts := startServer(t, generous)
	accountID := uuid.New()
	ts.verifier.On("VerifyAccessToken", "still-valid").
		Return(model.Principal{AccountID: accountID, AuthType: model.AuthTypeBearer}, true)
	ts.lookup.On("GetByID", mock.Anything, accountID).
		Return(model.Account{ID: accountID, Active: false}, nil)

	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer still-valid")
	_, err := ts.client.GetAccountInfo(ctx, &model.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRouter_APIKeyCallerRestrictions(t *testing.T) {
	t.Parallel()

	ts := startServer(t, generous)
	accountID := uuid.New()
	ts.keyAuth.On("Authenticate", mock.Anything, "ak0123456789ab_secret").
		Return(model.Principal{AccountID: accountID, AuthType: model.AuthTypeAPIKey, Scopes: []string{"read"}}, nil)
	ts.accounts.On("GetAccountInfo", mock.Anything, accountID).
		Return(model.Profile{ID: accountID}, nil)

	ctx := metadata.AppendToOutgoingContext(context.Background(), "x-api-key", "ak0123456789ab_secret")

	resp, err := ts.client.GetAccountInfo(ctx, &model.Empty{})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	_, err = ts.client.CreateAPIKey(ctx, &model.CreateAPIKeyRequest{Name: "ci", Scopes: []string{"read"}})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = ts.client.ChangePassword(ctx, &model.ChangePasswordRequest{CurrentPassword: "a", NewPassword: "b"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestRouter_LoginRateLimit(t *testing.T) {
	t.Parallel()

	ts := startServer(t, Options{LoginRatePerMinute: 1, LoginRateBurst: 2})
	req := model.LoginRequest{UsernameOrEmail: "alice", Password: "wrong"}
	ts.auth.On("Login", mock.Anything, req).Return(model.TokenPair{}, errBadCredentials).Twice()

	for i := 0; i < 2; i++ {
		resp, err := ts.client.Login(context.Background(), &req)
		require.NoError(t, err)
		assert.Equal(t, "InvalidCredentials", resp.Code)
	}

	_, err := ts.client.Login(context.Background(), &req)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	t.Parallel()

	ts := startServer(t, generous)
	req := model.RefreshTokenRequest{RefreshToken: "r1"}
	ts.auth.On("Logout", mock.Anything, req).Run(func(mock.Arguments) { panic("nil map write") })

	_, err := ts.client.Logout(context.Background(), &req)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "nil map write")
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	ts := startServer(t, generous)
	db := mocks.NewPinger(t)
	db.On("Ping", mock.Anything).Return(nil).Once()
	db.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()

	hc := healthpb.NewHealthClient(ts.conn)
	lg := testutil.MakeNoopLogger()

	CheckHealth(context.Background(), ts.health, db, lg)
	resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: authv1.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	CheckHealth(context.Background(), ts.health, db, lg)
	resp, err = hc.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestWatchHealth_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	hs := health.NewServer()
	db := mocks.NewPinger(t)
	db.On("Ping", mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		WatchHealth(ctx, hs, db, time.Hour, testutil.MakeNoopLogger())
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestRequiresAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		service string
		method  string
		want    bool
	}{
		{service: authv1.ServiceName, method: "Login", want: false},
		{service: authv1.ServiceName, method: "ValidateAPIKey", want: false},
		{service: authv1.ServiceName, method: "GetAccountInfo", want: true},
		{service: authv1.ServiceName, method: "UploadAvatar", want: true},
		{service: "grpc.health.v1.Health", method: "Check", want: false},
	}

	for _, tt := range tests {
		meta := interceptors.CallMeta{Service: tt.service, Method: tt.method}
		assert.Equal(t, tt.want, requiresAuth(context.Background(), meta), tt.method)
	}
}
