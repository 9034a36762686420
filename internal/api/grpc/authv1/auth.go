// Package authv1 describes the authkeeper.v1.Auth gRPC service.
//
// Messages are the request and envelope types of the model package, carried by the JSON
// codec. Clients must call with the json content subtype; NewAuthClient does this.
package authv1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dtroode/authkeeper/internal/api/grpc/codec"
	"github.com/dtroode/authkeeper/internal/model"
)

// ServiceName is the fully qualified service name.
const ServiceName = "authkeeper.v1.Auth"

// Full method names.
const (
	RegisterMethod             = "/" + ServiceName + "/Register"
	LoginMethod                = "/" + ServiceName + "/Login"
	RefreshTokenMethod         = "/" + ServiceName + "/RefreshToken"
	LogoutMethod               = "/" + ServiceName + "/Logout"
	ChangePasswordMethod       = "/" + ServiceName + "/ChangePassword"
	GetAccountInfoMethod       = "/" + ServiceName + "/GetAccountInfo"
	UpdateAccountInfoMethod    = "/" + ServiceName + "/UpdateAccountInfo"
	UploadAvatarMethod         = "/" + ServiceName + "/UploadAvatar"
	CreateAPIKeyMethod         = "/" + ServiceName + "/CreateAPIKey"
	ListAPIKeysMethod          = "/" + ServiceName + "/ListAPIKeys"
	RevokeAPIKeyMethod         = "/" + ServiceName + "/RevokeAPIKey"
	ValidateAPIKeyMethod       = "/" + ServiceName + "/ValidateAPIKey"
	ResetPasswordMethod        = "/" + ServiceName + "/ResetPassword"
	ConfirmResetPasswordMethod = "/" + ServiceName + "/ConfirmResetPassword"
)

// PublicMethods can be called without credentials.
var PublicMethods = map[string]bool{
	RegisterMethod:             true,
	LoginMethod:                true,
	RefreshTokenMethod:         true,
	LogoutMethod:               true,
	ValidateAPIKeyMethod:       true,
	ResetPasswordMethod:        true,
	ConfirmResetPasswordMethod: true,
}

// AuthServer is the server API of the Auth service.
type AuthServer interface {
	Register(context.Context, *model.RegisterRequest) (*model.Envelope[model.TokenPair], error)
	Login(context.Context, *model.LoginRequest) (*model.Envelope[model.TokenPair], error)
	RefreshToken(context.Context, *model.RefreshTokenRequest) (*model.Envelope[model.TokenPair], error)
	Logout(context.Context, *model.RefreshTokenRequest) (*model.Envelope[model.Empty], error)
	ChangePassword(context.Context, *model.ChangePasswordRequest) (*model.Envelope[model.Empty], error)
	GetAccountInfo(context.Context, *model.Empty) (*model.Envelope[model.Profile], error)
	UpdateAccountInfo(context.Context, *model.UpdateAccountRequest) (*model.Envelope[model.Profile], error)
	UploadAvatar(context.Context, *model.UploadAvatarRequest) (*model.Envelope[model.Profile], error)
	CreateAPIKey(context.Context, *model.CreateAPIKeyRequest) (*model.Envelope[model.CreatedAPIKey], error)
	ListAPIKeys(context.Context, *model.Empty) (*model.Envelope[[]model.APIKeyInfo], error)
	RevokeAPIKey(context.Context, *model.RevokeAPIKeyRequest) (*model.Envelope[model.Empty], error)
	ValidateAPIKey(context.Context, *model.ValidateAPIKeyRequest) (*model.Envelope[model.APIKeyValidation], error)
	ResetPassword(context.Context, *model.ResetPasswordRequest) (*model.Envelope[model.Empty], error)
	ConfirmResetPassword(context.Context, *model.ConfirmResetPasswordRequest) (*model.Envelope[model.Empty], error)
}

func unary[Req, Resp any](name string, call func(AuthServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AuthServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AuthServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc of the Auth service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", AuthServer.Register),
		unary("Login", AuthServer.Login),
		unary("RefreshToken", AuthServer.RefreshToken),
		unary("Logout", AuthServer.Logout),
		unary("ChangePassword", AuthServer.ChangePassword),
		unary("GetAccountInfo", AuthServer.GetAccountInfo),
		unary("UpdateAccountInfo", AuthServer.UpdateAccountInfo),
		unary("UploadAvatar", AuthServer.UploadAvatar),
		unary("CreateAPIKey", AuthServer.CreateAPIKey),
		unary("ListAPIKeys", AuthServer.ListAPIKeys),
		unary("RevokeAPIKey", AuthServer.RevokeAPIKey),
		unary("ValidateAPIKey", AuthServer.ValidateAPIKey),
		unary("ResetPassword", AuthServer.ResetPassword),
		unary("ConfirmResetPassword", AuthServer.ConfirmResetPassword),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "authkeeper/v1/auth",
}

// RegisterAuthServer registers srv on s.
func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// AuthClient is a client of the Auth service.
type AuthClient struct {
	cc grpc.ClientConnInterface
}

// NewAuthClient creates a client over cc.
func NewAuthClient(cc grpc.ClientConnInterface) *AuthClient {
	return &AuthClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AuthClient) Register(ctx context.Context, in *model.RegisterRequest, opts ...grpc.CallOption) (*model.Envelope[model.TokenPair], error) {
	return invoke[model.Envelope[model.TokenPair]](ctx, c.cc, RegisterMethod, in, opts)
}

func (c *AuthClient) Login(ctx context.Context, in *model.LoginRequest, opts ...grpc.CallOption) (*model.Envelope[model.TokenPair], error) {
	return invoke[model.Envelope[model.TokenPair]](ctx, c.cc, LoginMethod, in, opts)
}

func (c *AuthClient) RefreshToken(ctx context.Context, in *model.RefreshTokenRequest, opts ...grpc.CallOption) (*model.Envelope[model.TokenPair], error) {
	return invoke[model.Envelope[model.TokenPair]](ctx, c.cc, RefreshTokenMethod, in, opts)
}

func (c *AuthClient) Logout(ctx context.Context, in *model.RefreshTokenRequest, opts ...grpc.CallOption) (*model.Envelope[model.Empty], error) {
	return invoke[model.Envelope[model.Empty]](ctx, c.cc, LogoutMethod, in, opts)
}

func (c *AuthClient) ChangePassword(ctx context.Context, in *model.ChangePasswordRequest, opts ...grpc.CallOption) (*model.Envelope[model.Empty], error) {
	return invoke[model.Envelope[model.Empty]](ctx, c.cc, ChangePasswordMethod, in, opts)
}

func (c *AuthClient) GetAccountInfo(ctx context.Context, in *model.Empty, opts ...grpc.CallOption) (*model.Envelope[model.Profile], error) {
	return invoke[model.Envelope[model.Profile]](ctx, c.cc, GetAccountInfoMethod, in, opts)
}

func (c *AuthClient) UpdateAccountInfo(ctx context.Context, in *model.UpdateAccountRequest, opts ...grpc.CallOption) (*model.Envelope[model.Profile], error) {
	return invoke[model.Envelope[model.Profile]](ctx, c.cc, UpdateAccountInfoMethod, in, opts)
}

func (c *AuthClient) UploadAvatar(ctx context.Context, in *model.UploadAvatarRequest, opts ...grpc.CallOption) (*model.Envelope[model.Profile], error) {
	return invoke[model.Envelope[model.Profile]](ctx, c.cc, UploadAvatarMethod, in, opts)
}

func (c *AuthClient) CreateAPIKey(ctx context.Context, in *model.CreateAPIKeyRequest, opts ...grpc.CallOption) (*model.Envelope[model.CreatedAPIKey], error) {
	return invoke[model.Envelope[model.CreatedAPIKey]](ctx, c.cc, CreateAPIKeyMethod, in, opts)
}

func (c *AuthClient) ListAPIKeys(ctx context.Context, in *model.Empty, opts ...grpc.CallOption) (*model.Envelope[[]model.APIKeyInfo], error) {
	return invoke[model.Envelope[[]model.APIKeyInfo]](ctx, c.cc, ListAPIKeysMethod, in, opts)
}

func (c *AuthClient) RevokeAPIKey(ctx context.Context, in *model.RevokeAPIKeyRequest, opts ...grpc.CallOption) (*model.Envelope[model.Empty], error) {
	return invoke[model.Envelope[model.Empty]](ctx, c.cc, RevokeAPIKeyMethod, in, opts)
}

func (c *AuthClient) ValidateAPIKey(ctx context.Context, in *model.ValidateAPIKeyRequest, opts ...grpc.CallOption) (*model.Envelope[model.APIKeyValidation], error) {
	return invoke[model.Envelope[model.APIKeyValidation]](ctx, c.cc, ValidateAPIKeyMethod, in, opts)
}

func (c *AuthClient) ResetPassword(ctx context.Context, in *model.ResetPasswordRequest, opts ...grpc.CallOption) (*model.Envelope[model.Empty], error) {
	return invoke[model.Envelope[model.Empty]](ctx, c.cc, ResetPasswordMethod, in, opts)
}

func (c *AuthClient) ConfirmResetPassword(ctx context.Context, in *model.ConfirmResetPasswordRequest, opts ...grpc.CallOption) (*model.Envelope[model.Empty], error) {
	return invoke[model.Envelope[model.Empty]](ctx, c.cc, ConfirmResetPasswordMethod, in, opts)
}
