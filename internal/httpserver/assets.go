package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campushub/asset-manager/internal/events"
	"github.com/campushub/asset-manager/internal/logging"
	"github.com/campushub/asset-manager/internal/models"
	"github.com/campushub/asset-manager/internal/service"
)

type AssetHTTP struct {
	Svc      *service.AssetService
	Producer *events.Producer
}

func (h *AssetHTTP) GetAssets(c echo.Context) error {
	assets, err := h.Svc.Assets(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list assets")
	}
	return c.JSON(http.StatusOK, assets)
}

func (h *AssetHTTP) GetAsset(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "assets.get")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_asset_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	asset, err := h.Svc.Asset(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("get_asset_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get asset")
	}
	return c.JSON(http.StatusOK, asset)
}

func (h *AssetHTTP) GetAssetsByStatus(c echo.Context) error {
	assets, err := h.Svc.AssetsByStatus(c.Request().Context(), c.Param("status"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list assets")
	}
	return c.JSON(http.StatusOK, assets)
}

func (h *AssetHTTP) CreateAsset(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "assets.create")

	var asset models.Asset
	if err := c.Bind(&asset); err != nil {
		l.Warn("create_asset_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	asset.ID = 0

	if err := h.Svc.CreateAsset(ctx, &asset); err != nil {
		l.Error("create_asset_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create asset")
	}

	h.publish(c, fmt.Sprint(asset.ID), map[string]any{
		"type":     "asset_created",
		"asset_id": asset.ID,
		"name":     asset.Name,
	})

	l.Info("asset_created", "asset_id", asset.ID)
	return c.JSON(http.StatusOK, asset)
}

func (h *AssetHTTP) UpdateAsset(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "assets.update")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	var upd service.AssetUpdate
	if err := c.Bind(&upd); err != nil {
		l.Warn("update_asset_failed", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	asset, err := h.Svc.UpdateAsset(ctx, id, upd)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("update_asset_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update asset")
	}

	h.publish(c, fmt.Sprint(asset.ID), map[string]any{
		"type":     "asset_updated",
		"asset_id": asset.ID,
		"status":   asset.Status,
	})

	return c.JSON(http.StatusOK, asset)
}

func (h *AssetHTTP) DeleteAsset(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "assets.delete")

	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}

	if err := h.Svc.DeleteAsset(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("delete_asset_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete asset")
	}

	h.publish(c, fmt.Sprint(id), map[string]any{
		"type":     "asset_deleted",
		"asset_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *AssetHTTP) publish(c echo.Context, key string, event map[string]any) {
	publishEvent(c, h.Producer, events.TopicAssetEvents, key, event)
}
