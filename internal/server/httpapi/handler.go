package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/featurevote/internal/api"
	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/server/apiconv"
	"github.com/dmitrijs2005/featurevote/internal/server/models"
	"github.com/labstack/echo/v4"
)

const apiVersion = "1.0.0"

func (s *HTTPServer) root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Voting System API", "version": apiVersion})
}

func (s *HTTPServer) register(c echo.Context) error {
	var req api.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	u, err := s.users.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.User(u))
}

// login takes the OAuth2 password form (username, password).
func (s *HTTPServer) login(c echo.Context) error {
	var req api.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	token, err := s.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
		}
		return err
	}
	return c.JSON(http.StatusOK, api.Token{AccessToken: token, TokenType: api.TokenTypeBearer})
}

func (s *HTTPServer) me(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.User(u))
}

func (s *HTTPServer) createFeature(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}

	var req api.CreateFeatureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}

	f, err := s.features.Create(c.Request().Context(), u.ID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.Feature(f))
}

func (s *HTTPServer) listFeatures(c echo.Context) error {
	var req api.ListFeaturesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	list, err := s.ranking.List(c.Request().Context(), apiconv.ListQuery(&req, callerID(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.Features(list))
}

func (s *HTTPServer) getFeature(c echo.Context) error {
	id, err := featureID(c)
	if err != nil {
		return err
	}

	f, err := s.features.Get(c.Request().Context(), id, callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.Feature(f))
}

func (s *HTTPServer) toggleVote(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := featureID(c)
	if err != nil {
		return err
	}

	res, err := s.ledger.Toggle(c.Request().Context(), u.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apiconv.ToggleMessage(res))
}

func (s *HTTPServer) deleteFeature(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := featureID(c)
	if err != nil {
		return err
	}

	if err := s.features.Delete(c.Request().Context(), u.ID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, api.MessageResponse{Message: api.MessageFeatureDeleted})
}

func currentUser(c echo.Context) (*models.User, error) {
	u, ok := c.Get(userContextKey).(*models.User)
	if !ok || u == nil {
		return nil, common.ErrorUnauthorized
	}
	return u, nil
}

func callerID(c echo.Context) *int64 {
	u, err := currentUser(c)
	if err != nil {
		return nil
	}
	return &u.ID
}

func featureID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: feature id must be an integer", common.ErrorValidation)
	}
	return id, nil
}
