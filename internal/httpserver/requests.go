package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/asset-manager/internal/events"
	"github.com/campushub/asset-manager/internal/logging"
	"github.com/campushub/asset-manager/internal/service"
)

type RequestHTTP struct {
	Svc      *service.RequestService
	Producer *events.Producer
}

type idRef struct {
	ID uint `json:"id"`
}

// createRequestBody accepts both the flat user_id/asset_id shape and the
// nested {"user":{"id":..}} shape the web client sends.
type createRequestBody struct {
	UserID   uint   `json:"user_id"`
	AssetID  uint   `json:"asset_id"`
	User     *idRef `json:"user"`
	Asset    *idRef `json:"asset"`
	Comments string `json:"comments"`
}

func (b *createRequestBody) userID() uint {
	if b.UserID != 0 {
		return b.UserID
	}
	if b.User != nil {
		return b.User.ID
	}
	return 0
}

func (b *createRequestBody) assetID() uint {
	if b.AssetID != 0 {
		return b.AssetID
	}
	if b.Asset != nil {
		return b.Asset.ID
	}
	return 0
}

func (h *RequestHTTP) GetRequests(c echo.Context) error {
	reqs, err := h.Svc.Requests(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list requests")
	}
	return c.JSON(http.StatusOK, reqs)
}

func (h *RequestHTTP) GetRequest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	req, err := h.Svc.Request(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get request")
	}
	return c.JSON(http.StatusOK, req)
}

func (h *RequestHTTP) GetRequestsByStatus(c echo.Context) error {
	reqs, err := h.Svc.RequestsByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list requests")
	}
	return c.JSON(http.StatusOK, reqs)
}

func (h *RequestHTTP) GetRequestsByUser(c echo.Context) error {
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user id must be a positive integer")
	}

	reqs, err := h.Svc.RequestsByUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list requests")
	}
	return c.JSON(http.StatusOK, reqs)
}

func (h *RequestHTTP) CreateRequest(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "requests.create")

	var body createRequestBody
	if err := c.Bind(&body); err != nil {
		l.Warn("create_request_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	req, err := h.Svc.CreateRequest(ctx, body.userID(), body.assetID(), body.Comments)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("create_request_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create request")
	}

	h.publish(c, fmt.Sprint(req.ID), map[string]any{
		"type":       "request_created",
		"request_id": req.ID,
		"user_id":    req.UserID,
		"asset_id":   req.AssetID,
	})

	return c.JSON(http.StatusOK, req)
}

func (h *RequestHTTP) UpdateRequestStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "requests.update_status")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	var body struct {
		Status   string  `json:"status"`
		Comments *string `json:"comments"`
	}
	if err := c.Bind(&body); err != nil {
		l.Warn("update_status_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	req, err := h.Svc.UpdateStatus(ctx, id, body.Status, body.Comments)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("update_status_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update request")
	}

	h.publish(c, fmt.Sprint(req.ID), map[string]any{
		"type":       "request_status_updated",
		"request_id": req.ID,
		"status":     req.Status,
	})

	return c.JSON(http.StatusOK, req)
}

func (h *RequestHTTP) DeleteRequest(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	if err := h.Svc.DeleteRequest(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete request")
	}

	h.publish(c, fmt.Sprint(id), map[string]any{
		"type":       "request_deleted",
		"request_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *RequestHTTP) publish(c echo.Context, key string, event map[string]any) {
	publishEvent(c, h.Producer, events.TopicRequestEvents, key, event)
}
