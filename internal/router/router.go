// Package router wires the HTTP routes to their handlers and
// middleware. Everything lives under the /api prefix.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/haeun-dev/campus-life-server/internal/config"
	"github.com/haeun-dev/campus-life-server/internal/handler"
	"github.com/haeun-dev/campus-life-server/internal/middleware"
	"github.com/haeun-dev/campus-life-server/internal/model"
)

// Handlers bundles the constructed handler set for registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Store     *handler.StoreHandler
	Notice    *handler.NoticeHandler
	Favorite  *handler.FavoriteHandler
	JWTSecret string
}

// Register mounts every route. Public browse endpoints sit behind the
// Redis response cache, the credential endpoints behind the rate
// limiter, and everything account- or manager-scoped behind JWTAuth.
func Register(e *echo.Echo, h Handlers, rdb *redis.Client) {
	api := e.Group("/api")
	api.GET("/healthz", handler.Health)

	// Public browse group: semi-static GETs worth caching.
	cached := api.Group("/v1", middleware.NewResponseCache(config.LoadCacheConfig(), rdb))
	cached.GET("/haksik", handler.CafeteriaMenu)
	cached.GET("/ad", handler.AdBanners)
	cached.GET("/store", h.Store.ListAll)
	cached.GET("/store/food", h.Store.ListFood)
	cached.GET("/store/cafe", h.Store.ListCafe)
	cached.GET("/store/convenience", h.Store.ListConvenience)
	cached.GET("/store/facilities", h.Store.ListFacilities)

	// Search and detail bypass the cache: search is high-cardinality
	// and detail must reflect notice edits immediately.
	api.GET("/v1/store/search", h.Store.Search)
	api.GET("/v1/store/:id", h.Store.Detail)
	api.GET("/v1/store/:id/notice", h.Notice.List)
	api.GET("/v1/store/:id/notice/:nid", h.Notice.Get)

	// Credential endpoints, rate limited per client IP.
	user := api.Group("/v1/user", middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb))
	user.POST("/signup", h.Auth.Signup)
	user.POST("/check-email", h.Auth.CheckEmail)
	user.POST("/login", h.Auth.Login)
	user.POST("/refresh", h.Auth.Refresh)
	user.POST("/logout", h.Auth.Logout)

	// Account-scoped endpoints: any authenticated role.
	me := api.Group("/v1", middleware.JWTAuth(h.JWTSecret))
	me.GET("/user/me", h.Auth.Me)
	me.POST("/user/verify/phone", h.Auth.VerifyPhone)
	me.POST("/user/verify/school", h.Auth.VerifySchool)
	me.GET("/user/favorite", h.Favorite.List)
	me.POST("/store/:id/favorite", h.Favorite.Add)
	me.DELETE("/store/:id/favorite", h.Favorite.Remove)

	// Manager endpoints: role gate here, manager-of-record check in
	// the handlers.
	mgr := api.Group("/v1", middleware.JWTAuth(h.JWTSecret), middleware.RequireRole(model.RoleManager))
	mgr.PUT("/store/:id", h.Store.Update)
	mgr.POST("/store/:id/notice", h.Notice.Create)
	mgr.PUT("/store/:id/notice/:nid", h.Notice.Update)
	mgr.DELETE("/store/:id/notice/:nid", h.Notice.Delete)
}
