// Package grpc exposes the featurevote services over gRPC with the JSON
// codec from internal/api.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/api"
	"github.com/dmitrijs2005/featurevote/internal/logging"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

type FeatureService interface {
	Create(ctx context.Context, userID int64, title, description string) (*models.FeatureSummary, error)
	Get(ctx context.Context, featureID int64, callerID *int64) (*models.FeatureSummary, error)
	Delete(ctx context.Context, userID, featureID int64) error
}

type VoteLedger interface {
	Toggle(ctx context.Context, userID, featureID int64) (models.ToggleResult, error)
}

type RankingService interface {
	List(ctx context.Context, q models.ListQuery) ([]*models.FeatureSummary, error)
}

type GRPCServer struct {
	address        string
	users          UserService
	features       FeatureService
	ledger         VoteLedger
	ranking        RankingService
	logger         logging.Logger
	requestTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, us UserService, fs FeatureService, vl VoteLedger, rs RankingService, requestTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		users:          us,
		features:       fs,
		ledger:         vl,
		ranking:        rs,
		requestTimeout: requestTimeout,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.requestIDInterceptor,
		s.loggingInterceptor,
		s.deadlineInterceptor,
		s.accessTokenInterceptor,
	))
	api.RegisterFeatureVoteServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
