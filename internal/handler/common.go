// Package handler implements the HTTP endpoints of the reservation API.
// Handlers bind and validate input, call a repository or service, and map
// errors onto statuses with writeError.
package handler

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-reservation/internal/model"
    "github.com/iliyamo/hotel-reservation/internal/repository"
    "github.com/iliyamo/hotel-reservation/internal/service"
)

const requestTimeout = 5 * time.Second

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// flexID accepts an identifier given either as a JSON string or a JSON
// number; numbers are kept in their decimal form.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if bytes.Equal(b, []byte("null")) {
        *f = ""
        return nil
    }
    if len(b) > 0 && b[0] == '"' {
        var s string
        if err := json.Unmarshal(b, &s); err != nil {
            return err
        }
        *f = flexID(s)
        return nil
    }
    var n json.Number
    if err := json.Unmarshal(b, &n); err != nil {
        return fmt.Errorf("id must be a string or a number")
    }
    *f = flexID(n.String())
    return nil
}

// writeError maps domain, repository and service errors onto HTTP statuses.
func writeError(c echo.Context, err error) error {
    var ve *model.ValidationError
    switch {
    case errors.As(err, &ve):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, model.ErrNoRoomsAvailable),
        errors.Is(err, service.ErrAlreadyCancelled),
        errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, context.DeadlineExceeded):
        return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "request timed out"})
    default:
        c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}

// getUserID extracts the authenticated staff id set by JWTAuth.
func getUserID(c echo.Context) (uint64, error) {
    switch t := c.Get("user_id").(type) {
    case uint64:
        return t, nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// paging reads ?limit=&offset= with a default page of 50 and a cap of 200.
func paging(c echo.Context) (limit, offset int) {
    limit, offset = 50, 0
    if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
        limit = v
    }
    if limit > 200 {
        limit = 200
    }
    if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
        offset = v
    }
    return limit, offset
}
