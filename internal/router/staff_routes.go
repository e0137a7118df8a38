package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// RegisterStaff mounts the authenticated endpoints.  Hotel writes need
// ADMIN; customer and reservation work is open to ADMIN and CLERK.  Every
// write purges the public response cache.
func RegisterStaff(e *echo.Echo, h Handlers, opt Options) {
	auth := middleware.JWTAuth(opt.JWTSecret)
	staff := middleware.RequireRole(repository.RoleAdmin, repository.RoleClerk)
	admin := middleware.RequireRole(repository.RoleAdmin)
	purge := middleware.NewCacheInvalidator(opt.Cache, opt.Redis)

	e.POST("/v1/hotels", h.Hotels.Create, auth, admin, purge)
	e.PATCH("/v1/hotels/:id", h.Hotels.Update, auth, admin, purge)
	e.GET("/v1/hotels/:id/reservations", h.Hotels.ListReservations, auth, staff)

	c := e.Group("/v1/customers", auth, staff)
	c.GET("", h.Customers.List)
	c.POST("", h.Customers.Create)
	c.GET("/:id", h.Customers.Get)
	c.PATCH("/:id", h.Customers.Update)
	c.DELETE("/:id", h.Customers.Delete)
	c.GET("/:id/reservations", h.Customers.ListReservations)

	r := e.Group("/v1/reservations", auth, staff)
	r.POST("", h.Reservations.Create, purge)
	r.GET("/:id", h.Reservations.Get)
	r.DELETE("/:id", h.Reservations.Cancel, purge)
}
