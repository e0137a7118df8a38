package middleware

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userID returns the authenticated staff id as a string, or "anon" when the
// request carries no identity.  Public routes run without JWTAuth, so
// limiter keys for them always use "anon".
func userID(c echo.Context) string {
    switch v := c.Get(CtxUserID).(type) {
    case uint64:
        return strconv.FormatUint(v, 10)
    case string:
        if v != "" {
            return v
        }
    }
    return "anon"
}
