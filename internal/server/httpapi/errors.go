package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the {"detail": ...} error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func httpStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrTimeout):
		return http.StatusGatewayTimeout, "Request timed out"
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "Username or email already registered"
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Feature not found"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "You don't have permission"
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}
	return http.StatusInternalServerError, "Internal server error"
}

func (s *HTTPServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, detail := httpStatus(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed",
			"error", err.Error(), "request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ErrorResponse{Detail: detail})
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "write error response", "error", err.Error())
	}
}
