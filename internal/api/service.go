package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "featurevote.FeatureVoteService"

const (
	MethodRegister      = "/" + ServiceName + "/Register"
	MethodLogin         = "/" + ServiceName + "/Login"
	MethodMe            = "/" + ServiceName + "/Me"
	MethodCreateFeature = "/" + ServiceName + "/CreateFeature"
	MethodListFeatures  = "/" + ServiceName + "/ListFeatures"
	MethodGetFeature    = "/" + ServiceName + "/GetFeature"
	MethodToggleVote    = "/" + ServiceName + "/ToggleVote"
	MethodDeleteFeature = "/" + ServiceName + "/DeleteFeature"
	MethodPing          = "/" + ServiceName + "/Ping"
)

// FeatureVoteServer is the server API for FeatureVoteService.
type FeatureVoteServer interface {
	Register(context.Context, *RegisterRequest) (*User, error)
	Login(context.Context, *LoginRequest) (*Token, error)
	Me(context.Context, *MeRequest) (*User, error)
	CreateFeature(context.Context, *CreateFeatureRequest) (*Feature, error)
	ListFeatures(context.Context, *ListFeaturesRequest) (*ListFeaturesResponse, error)
	GetFeature(context.Context, *GetFeatureRequest) (*Feature, error)
	ToggleVote(context.Context, *ToggleVoteRequest) (*ToggleVoteResponse, error)
	DeleteFeature(context.Context, *DeleteFeatureRequest) (*MessageResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

func RegisterFeatureVoteServer(s grpc.ServiceRegistrar, srv FeatureVoteServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary builds a method handler that decodes Req and dispatches to call,
// running the server's interceptor chain when there is one.
func unary[Req any, Resp any](fullMethod string, call func(FeatureVoteServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FeatureVoteServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FeatureVoteServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the grpc.ServiceDesc for FeatureVoteService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FeatureVoteServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(MethodRegister, FeatureVoteServer.Register)},
		{MethodName: "Login", Handler: unary(MethodLogin, FeatureVoteServer.Login)},
		{MethodName: "Me", Handler: unary(MethodMe, FeatureVoteServer.Me)},
		{MethodName: "CreateFeature", Handler: unary(MethodCreateFeature, FeatureVoteServer.CreateFeature)},
		{MethodName: "ListFeatures", Handler: unary(MethodListFeatures, FeatureVoteServer.ListFeatures)},
		{MethodName: "GetFeature", Handler: unary(MethodGetFeature, FeatureVoteServer.GetFeature)},
		{MethodName: "ToggleVote", Handler: unary(MethodToggleVote, FeatureVoteServer.ToggleVote)},
		{MethodName: "DeleteFeature", Handler: unary(MethodDeleteFeature, FeatureVoteServer.DeleteFeature)},
		{MethodName: "Ping", Handler: unary(MethodPing, FeatureVoteServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "featurevote.json",
}

// FeatureVoteClient is the client API for FeatureVoteService.
type FeatureVoteClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*User, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*Token, error)
	Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*User, error)
	CreateFeature(ctx context.Context, in *CreateFeatureRequest, opts ...grpc.CallOption) (*Feature, error)
	ListFeatures(ctx context.Context, in *ListFeaturesRequest, opts ...grpc.CallOption) (*ListFeaturesResponse, error)
	GetFeature(ctx context.Context, in *GetFeatureRequest, opts ...grpc.CallOption) (*Feature, error)
	ToggleVote(ctx context.Context, in *ToggleVoteRequest, opts ...grpc.CallOption) (*ToggleVoteResponse, error)
	DeleteFeature(ctx context.Context, in *DeleteFeatureRequest, opts ...grpc.CallOption) (*MessageResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type featureVoteClient struct {
	cc grpc.ClientConnInterface
}

// NewFeatureVoteClient returns a client that always speaks the JSON codec.
func NewFeatureVoteClient(cc grpc.ClientConnInterface) FeatureVoteClient {
	return &featureVoteClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *featureVoteClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodRegister, in, opts)
}

func (c *featureVoteClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*Token, error) {
	return invoke[Token](ctx, c.cc, MethodLogin, in, opts)
}

func (c *featureVoteClient) Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodMe, in, opts)
}

func (c *featureVoteClient) CreateFeature(ctx context.Context, in *CreateFeatureRequest, opts ...grpc.CallOption) (*Feature, error) {
	return invoke[Feature](ctx, c.cc, MethodCreateFeature, in, opts)
}

func (c *featureVoteClient) ListFeatures(ctx context.Context, in *ListFeaturesRequest, opts ...grpc.CallOption) (*ListFeaturesResponse, error) {
	return invoke[ListFeaturesResponse](ctx, c.cc, MethodListFeatures, in, opts)
}

func (c *featureVoteClient) GetFeature(ctx context.Context, in *GetFeatureRequest, opts ...grpc.CallOption) (*Feature, error) {
	return invoke[Feature](ctx, c.cc, MethodGetFeature, in, opts)
}

func (c *featureVoteClient) ToggleVote(ctx context.Context, in *ToggleVoteRequest, opts ...grpc.CallOption) (*ToggleVoteResponse, error) {
	return invoke[ToggleVoteResponse](ctx, c.cc, MethodToggleVote, in, opts)
}

func (c *featureVoteClient) DeleteFeature(ctx context.Context, in *DeleteFeatureRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, MethodDeleteFeature, in, opts)
}

func (c *featureVoteClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
