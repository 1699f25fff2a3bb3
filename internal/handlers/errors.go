package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/curious/backend/internal/apperrors"
	"github.com/anonto42/curious/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps application errors to responses. Only the sentinel text
// reaches the client; wrapped context and driver messages stay internal.
func toHTTPError(err error) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, apperrors.ErrNoSubject):
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrNoSubject.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrNotFound.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrForbidden.Error())
	case errors.Is(err, apperrors.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, apperrors.ErrConflict.Error())
	case errors.Is(err, apperrors.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidInput.Error())
	case errors.Is(err, apperrors.ErrUpstream):
		return echo.NewHTTPError(http.StatusBadGateway, apperrors.ErrUpstream.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}

func currentUserID(c echo.Context) (uint, error) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return claims.UserID, nil
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// pagination reads page and limit query params. limit is capped at 50.
func pagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}
