// Package router wires handlers and middleware onto the echo instance.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// Handlers groups everything the routes need.
type Handlers struct {
	Auth         *handler.AuthHandler
	Hotels       *handler.HotelHandler
	Customers    *handler.CustomerHandler
	Reservations *handler.ReservationHandler
}

// Options carries the Redis-backed middleware settings.  A nil Redis client
// turns caching and rate limiting off.
type Options struct {
	JWTSecret string
	Redis     *redis.Client
	RateLimit config.RateLimitConfig
	Cache     config.CacheConfig
}

// Register mounts every route.
func Register(e *echo.Echo, db *sql.DB, h Handlers, opt Options) {
	RegisterRoutes(e, db)
	RegisterAuth(e, h.Auth, opt.JWTSecret)
	RegisterPublic(e, h.Hotels, opt)
	RegisterStaff(e, h, opt)
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth mounts staff authentication under /v1/auth and the token
// echo endpoint /v1/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// logout accepts a refresh token without a bearer, so it stays outside JWTAuth
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterPublic mounts the read-only hotel listing behind the rate limiter
// and the response cache.
func RegisterPublic(e *echo.Echo, h *handler.HotelHandler, opt Options) {
	limit := middleware.NewTokenBucket(opt.RateLimit, opt.Redis)
	cache := middleware.NewRedisCache(opt.Cache, opt.Redis)
	e.GET("/v1/hotels", h.List, limit, cache)
	e.GET("/v1/hotels/:id", h.Get, limit, cache)
}
