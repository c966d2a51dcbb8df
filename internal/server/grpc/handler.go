package grpc

import (
	"context"

	"github.com/dmitrijs2005/featurevote/internal/api"
	"github.com/dmitrijs2005/featurevote/internal/server/apiconv"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.User, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	u, err := s.users.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "username", u.UserName, "id", u.ID)
	return apiconv.User(u), nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.Token, error) {

	token, err := s.users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}

	return &api.Token{AccessToken: token, TokenType: api.TokenTypeBearer}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *api.MeRequest) (*api.User, error) {
	u, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}
	return apiconv.User(u), nil
}

func (s *GRPCServer) CreateFeature(ctx context.Context, req *api.CreateFeatureRequest) (*api.Feature, error) {
	u, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	f, err := s.features.Create(ctx, u.ID, req.Title, req.Description)
	if err != nil {
		return nil, s.fail(ctx, "create feature", err)
	}
	return apiconv.Feature(f), nil
}

func (s *GRPCServer) ListFeatures(ctx context.Context, req *api.ListFeaturesRequest) (*api.ListFeaturesResponse, error) {
	var callerID *int64
	if u, ok := userFromContext(ctx); ok {
		callerID = &u.ID
	}

	list, err := s.ranking.List(ctx, apiconv.ListQuery(req, callerID))
	if err != nil {
		return nil, s.fail(ctx, "list features", err)
	}
	return &api.ListFeaturesResponse{Features: apiconv.Features(list)}, nil
}

func (s *GRPCServer) GetFeature(ctx context.Context, req *api.GetFeatureRequest) (*api.Feature, error) {
	var callerID *int64
	if u, ok := userFromContext(ctx); ok {
		callerID = &u.ID
	}

	f, err := s.features.Get(ctx, req.ID, callerID)
	if err != nil {
		return nil, s.fail(ctx, "get feature", err)
	}
	return apiconv.Feature(f), nil
}

func (s *GRPCServer) ToggleVote(ctx context.Context, req *api.ToggleVoteRequest) (*api.ToggleVoteResponse, error) {
	u, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	res, err := s.ledger.Toggle(ctx, u.ID, req.FeatureID)
	if err != nil {
		return nil, s.fail(ctx, "toggle vote", err)
	}
	return apiconv.ToggleMessage(res), nil
}

func (s *GRPCServer) DeleteFeature(ctx context.Context, req *api.DeleteFeatureRequest) (*api.MessageResponse, error) {
	u, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	if err := s.features.Delete(ctx, u.ID, req.ID); err != nil {
		return nil, s.fail(ctx, "delete feature", err)
	}
	return &api.MessageResponse{Message: api.MessageFeatureDeleted}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

// fail converts err to a status, logging the cause when it is not one of
// the expected client-facing outcomes.
func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, op+" failed", "error", err.Error(), "request_id", requestIDFromContext(ctx))
	}
	return st
}
