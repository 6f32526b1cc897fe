package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ServiceName          = "gophauth.AccountService"
	SignUpFullMethodName = "/" + ServiceName + "/SignUp"
	LoginFullMethodName  = "/" + ServiceName + "/Login"
)

// AccountServiceServer is implemented by the server side of the service.
type AccountServiceServer interface {
	SignUp(context.Context, *SignUpRequest) (*AccountReply, error)
	Login(context.Context, *LoginRequest) (*AccountReply, error)
}

// UnimplementedAccountServiceServer can be embedded for forward compatibility.
type UnimplementedAccountServiceServer struct{}

func (UnimplementedAccountServiceServer) SignUp(context.Context, *SignUpRequest) (*AccountReply, error) {
	return nil, status.Error(codes.Unimplemented, "method SignUp not implemented")
}

func (UnimplementedAccountServiceServer) Login(context.Context, *LoginRequest) (*AccountReply, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func RegisterAccountServiceServer(s grpc.ServiceRegistrar, srv AccountServiceServer) {
	s.RegisterService(&AccountServiceDesc, srv)
}

func signUpHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SignUpRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountServiceServer).SignUp(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SignUpFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountServiceServer).SignUp(ctx, req.(*SignUpRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func loginHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(LoginRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AccountServiceServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LoginFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AccountServiceServer).Login(ctx, req.(*LoginRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// AccountServiceDesc describes gophauth.AccountService to grpc.Server.
var AccountServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: signUpHandler},
		{MethodName: "Login", Handler: loginHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophauth/account_service",
}

// AccountServiceClient is the client API for gophauth.AccountService.
type AccountServiceClient interface {
	SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*AccountReply, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AccountReply, error)
}

type accountServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAccountServiceClient(cc grpc.ClientConnInterface) AccountServiceClient {
	return &accountServiceClient{cc: cc}
}

func (c *accountServiceClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*AccountReply, error) {
	out := new(AccountReply)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, SignUpFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AccountReply, error) {
	out := new(AccountReply)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, LoginFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
