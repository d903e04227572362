package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"gavel/internal/errors"
)

// AuthHeader is the opaque bearer token header used across the API.
const AuthHeader = "X-Authorization"

func token(c echo.Context) string {
	return c.Request().Header.Get(AuthHeader)
}

// requireToken returns the presented token or an authentication failure when
// the header is absent.
func requireToken(c echo.Context) (string, error) {
	t := token(c)
	if t == "" {
		return "", httpError(errors.ErrMissingToken)
	}
	return t, nil
}

// httpError converts a domain error into the transport-level response.
func httpError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// pathID parses the :id parameter. A malformed id is indistinguishable from a
// missing record.
func pathID(c echo.Context, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, httpError(notFound)
	}
	return id, nil
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
