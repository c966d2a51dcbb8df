package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const userContextKey = "user"

func (s *HTTPServer) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status,
				"request_id", v.RequestID, "duration", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(s.deadline)

	required := s.authMiddleware(false)
	optional := s.authMiddleware(true)

	e.GET("/", s.root)
	e.POST("/register", s.register)
	e.POST("/token", s.login)
	e.GET("/me", s.me, required)

	e.POST("/features", s.createFeature, required)
	e.GET("/features", s.listFeatures, optional)
	e.GET("/features/:id", s.getFeature, optional)
	e.POST("/features/:id/vote", s.toggleVote, required)
	e.DELETE("/features/:id", s.deleteFeature, required)

	return e
}

// authMiddleware resolves the bearer token to a user through the user
// service. When optional, a missing or bad token leaves the request
// anonymous.
func (s *HTTPServer) authMiddleware(optional bool) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:             userContextKey,
		ContinueOnIgnoredError: optional,
		ParseTokenFunc: func(c echo.Context, auth string) (any, error) {
			return s.users.CurrentUser(c.Request().Context(), auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, common.ErrTimeout) {
				return err
			}
			if optional {
				return nil
			}
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
		},
	})
}

func (s *HTTPServer) deadline(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.requestTimeout <= 0 {
			return next(c)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), s.requestTimeout)
		defer cancel()
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
