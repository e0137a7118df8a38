// Package middleware holds the echo middleware placed in front of the
// reservation API: bearer authentication, role checks, the Redis rate
// limiter and the Redis response cache.
package middleware

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-reservation/internal/utils"
)

// Context keys set by JWTAuth.
const (
    CtxUserID = "user_id"
    CtxRole   = "role"
)

// JWTAuth validates a Bearer access token and stores the user id (uint64)
// and role (string) in the echo context.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw, ok := BearerToken(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            claims, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            uid, _ := claims.UserID()
            c.Set(CtxUserID, uid)
            c.Set(CtxRole, claims.Role)
            return next(c)
        }
    }
}

// BearerToken returns the token of an "Authorization: Bearer" header.
func BearerToken(c echo.Context) (string, bool) {
    auth := c.Request().Header.Get(echo.HeaderAuthorization)
    if !strings.HasPrefix(auth, "Bearer ") {
        return "", false
    }
    raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
    return raw, raw != ""
}
