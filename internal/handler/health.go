package handler

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Health reports liveness for load balancers.  When db is set it also pings
// the database and answers 503 if the ping fails.
func Health(db *sql.DB) echo.HandlerFunc {
    return func(c echo.Context) error {
        if db != nil {
            ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
            defer cancel()
            if err := db.PingContext(ctx); err != nil {
                return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "db": err.Error()})
            }
        }
        return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
    }
}
