package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/campushub/asset-manager/internal/middleware"
	"github.com/campushub/asset-manager/internal/models"
	"github.com/campushub/asset-manager/internal/token"
)

type Deps struct {
	Tokens *token.Service

	AuthHandler    *AuthHTTP
	AssetHandler   *AssetHTTP
	RequestHandler *RequestHTTP
	UserHandler    *UserHTTP
	SearchHandler  *SearchHTTP // nil when Elasticsearch is not configured
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// The auth gate runs on every /api route, including the public ones; it
	// only establishes identity, it never rejects.
	api := e.Group("/api", mw.Authenticate(d.Tokens))

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)

	assets := api.Group("/assets", mw.RequireAuth)
	assets.GET("", d.AssetHandler.GetAssets)
	assets.GET("/:id", d.AssetHandler.GetAsset)
	assets.GET("/status/:status", d.AssetHandler.GetAssetsByStatus)
	if d.SearchHandler != nil {
		assets.GET("/search", d.SearchHandler.SearchAssets)
	}

	adminOnly := mw.RequireRole(models.RoleAdmin)
	assets.POST("", d.AssetHandler.CreateAsset, adminOnly)
	assets.PUT("/:id", d.AssetHandler.UpdateAsset, adminOnly)
	assets.DELETE("/:id", d.AssetHandler.DeleteAsset, adminOnly)

	requests := api.Group("/requests", mw.RequireAuth)
	requests.GET("", d.RequestHandler.GetRequests)
	requests.GET("/:id", d.RequestHandler.GetRequest)
	requests.GET("/status/:status", d.RequestHandler.GetRequestsByStatus)
	requests.GET("/user/:userId", d.RequestHandler.GetRequestsByUser)
	requests.POST("", d.RequestHandler.CreateRequest)
	requests.PATCH("/:id/status", d.RequestHandler.UpdateRequestStatus, adminOnly)
	requests.DELETE("/:id", d.RequestHandler.DeleteRequest)

	users := api.Group("/users", mw.RequireAuth)
	users.GET("", d.UserHandler.GetUsers, adminOnly)
	users.GET("/:id", d.UserHandler.GetUser)
	users.GET("/username/:username", d.UserHandler.GetUserByUsername)
	users.DELETE("/:id", d.UserHandler.DeleteUser, adminOnly)
}
