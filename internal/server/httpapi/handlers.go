package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ebalakin/cartsync/internal/api"
	"github.com/ebalakin/cartsync/internal/common"
	"github.com/ebalakin/cartsync/internal/logging"
)

type handlers struct {
	users  UserService
	lists  ListService
	sync   SyncService
	logger logging.Logger
}

func (h *handlers) ping(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *handlers) register(c echo.Context) error {
	var req api.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	if _, err := h.users.Register(c.Request().Context(), req.Email, req.Password); err != nil {
		h.logger.Warn(c.Request().Context(), "registration failed", "email", req.Email, "error", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, "registration failed")
	}
	return c.NoContent(http.StatusOK)
}

func (h *handlers) login(c echo.Context) error {
	var req api.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}

	token, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, api.LoginResponse{AccessToken: token})
}

func (h *handlers) createList(c echo.Context) error {
	var req api.CreateListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	id, err := h.lists.Create(c.Request().Context(), currentUser(c), req.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, api.CreateListResponse{ID: id})
}

func (h *handlers) shareList(c echo.Context) error {
	var req api.ShareListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}

	err := h.lists.Share(c.Request().Context(), currentUser(c), c.Param("id"), req.Email)
	switch {
	case errors.Is(err, common.ErrAccessDenied):
		return echo.NewHTTPError(http.StatusForbidden)
	case errors.Is(err, common.ErrorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "no such account")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusOK)
}

func (h *handlers) syncList(c echo.Context) error {
	var req api.SyncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}

	resp, err := h.sync.Sync(c.Request().Context(), currentUser(c), c.Param("id"), &req)
	switch {
	case errors.Is(err, common.ErrAccessDenied):
		return echo.NewHTTPError(http.StatusForbidden)
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, resp)
}
