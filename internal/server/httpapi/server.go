// Package httpapi serves the featurevote REST API with echo: token login
// by form post, JSON everywhere else.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/logging"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
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

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address        string
	users          UserService
	features       FeatureService
	ledger         VoteLedger
	ranking        RankingService
	logger         logging.Logger
	requestTimeout time.Duration
	echo           *echo.Echo
}

func NewHTTPServer(a string, l logging.Logger, us UserService, fs FeatureService, vl VoteLedger, rs RankingService, requestTimeout time.Duration) *HTTPServer {
	s := &HTTPServer{
		address:        a,
		logger:         l.With("module", "http_server"),
		users:          us,
		features:       fs,
		ledger:         vl,
		ranking:        rs,
		requestTimeout: requestTimeout,
	}
	s.echo = s.routes()
	return s
}

// Handler exposes the router, mostly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}
