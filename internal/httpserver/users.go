package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/asset-manager/internal/logging"
	"github.com/campushub/asset-manager/internal/service"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) GetUsers(c echo.Context) error {
	users, err := h.Svc.Users(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list users")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	user, err := h.Svc.User(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) GetUserByUsername(c echo.Context) error {
	user, err := h.Svc.UserByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.delete")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		switch {
		case errors.Is(err, service.ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("delete_user_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete user")
	}

	return c.NoContent(http.StatusNoContent)
}
