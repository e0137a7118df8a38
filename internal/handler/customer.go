package handler

import (
    "net/http"
    "strings"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-reservation/internal/model"
    "github.com/iliyamo/hotel-reservation/internal/repository"
)

// CustomerHandler serves the staff-facing customer endpoints.
type CustomerHandler struct {
    Customers    *repository.CustomerRepo
    Reservations *repository.ReservationRepo
}

func NewCustomerHandler(c *repository.CustomerRepo, r *repository.ReservationRepo) *CustomerHandler {
    return &CustomerHandler{Customers: c, Reservations: r}
}

type createCustomerReq struct {
    CustomerID flexID `json:"customer_id"`
    Name       string `json:"name"`
    Email      string `json:"email"`
    Phone      string `json:"phone"`
}

type updateCustomerReq struct {
    Name  *string `json:"name"`
    Email *string `json:"email"`
    Phone *string `json:"phone"`
}

// Create registers a customer.  The id is generated when omitted.
func (h *CustomerHandler) Create(c echo.Context) error {
    var req createCustomerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    id := strings.TrimSpace(string(req.CustomerID))
    if id == "" {
        id = uuid.NewString()
    }
    cust, err := model.NewCustomer(id, req.Name, req.Email, req.Phone)
    if err != nil {
        return writeError(c, err)
    }
    ctx, cancel := requestCtx(c)
    defer cancel()
    if err := h.Customers.Create(ctx, cust); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, cust.DTO())
}

// Get returns one customer.
func (h *CustomerHandler) Get(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()
    cust, err := h.Customers.GetByID(ctx, c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, cust.DTO())
}

// List pages through customers.
func (h *CustomerHandler) List(c echo.Context) error {
    limit, offset := paging(c)
    ctx, cancel := requestCtx(c)
    defer cancel()
    list, err := h.Customers.List(ctx, limit, offset)
    if err != nil {
        return writeError(c, err)
    }
    out := make([]model.CustomerDTO, 0, len(list))
    for _, cust := range list {
        out = append(out, cust.DTO())
    }
    return c.JSON(http.StatusOK, echo.Map{"customers": out, "limit": limit, "offset": offset})
}

// Update applies a partial edit.  Either every provided field is valid and
// stored, or nothing changes.
func (h *CustomerHandler) Update(c echo.Context) error {
    var req updateCustomerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Name == nil && req.Email == nil && req.Phone == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
    }
    ctx, cancel := requestCtx(c)
    defer cancel()
    cust, err := h.Customers.GetByID(ctx, c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    if err := cust.Update(model.CustomerUpdate{Name: req.Name, Email: req.Email, Phone: req.Phone}); err != nil {
        return writeError(c, err)
    }
    if err := h.Customers.Update(ctx, cust); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, cust.DTO())
}

// Delete removes a customer without booked reservations.
func (h *CustomerHandler) Delete(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()
    if err := h.Customers.Delete(ctx, c.Param("id")); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ListReservations lists every reservation of a customer.
func (h *CustomerHandler) ListReservations(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()
    id := c.Param("id")
    if _, err := h.Customers.GetByID(ctx, id); err != nil {
        return writeError(c, err)
    }
    recs, err := h.Reservations.ListByCustomer(ctx, id)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": reservationViews(recs)})
}
