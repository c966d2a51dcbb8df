package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/featurevote/internal/api"
	"github.com/dmitrijs2005/featurevote/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.FeatureVoteClient

	mu          sync.RWMutex
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewFeatureVoteClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewFeatureVoteClient(conn)
	return nil
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// SetAccessToken replaces the bearer token sent with every call.
// An empty token sends no authorization metadata.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.mu.Unlock()
}

func (s *GRPCClient) Register(ctx context.Context, username, email, password string) (*api.User, error) {
	req := &api.RegisterRequest{Username: username, Email: email, Password: password}

	user, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

// Login authenticates and keeps the issued token for subsequent calls.
func (s *GRPCClient) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}

	s.SetAccessToken(resp.AccessToken)
	return resp.AccessToken, nil
}

func (s *GRPCClient) Me(ctx context.Context) (*api.User, error) {
	user, err := s.client.Me(ctx, &api.MeRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return user, nil
}

func (s *GRPCClient) CreateFeature(ctx context.Context, title, description string) (*api.Feature, error) {
	f, err := s.client.CreateFeature(ctx, &api.CreateFeatureRequest{Title: title, Description: description})
	if err != nil {
		return nil, s.mapError(err)
	}
	return f, nil
}

func (s *GRPCClient) ListFeatures(ctx context.Context, sortBy string, skip, limit int) ([]api.Feature, error) {
	resp, err := s.client.ListFeatures(ctx, &api.ListFeaturesRequest{Skip: skip, Limit: limit, SortBy: sortBy})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Features, nil
}

func (s *GRPCClient) GetFeature(ctx context.Context, id int64) (*api.Feature, error) {
	f, err := s.client.GetFeature(ctx, &api.GetFeatureRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return f, nil
}

func (s *GRPCClient) ToggleVote(ctx context.Context, featureID int64) (*api.ToggleVoteResponse, error) {
	resp, err := s.client.ToggleVote(ctx, &api.ToggleVoteRequest{FeatureID: featureID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) DeleteFeature(ctx context.Context, id int64) (string, error) {
	resp, err := s.client.DeleteFeature(ctx, &api.DeleteFeatureRequest{ID: id})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Message, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return ErrForbidden
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
