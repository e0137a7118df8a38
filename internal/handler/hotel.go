package handler

import (
    "net/http"
    "strings"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-reservation/internal/model"
    "github.com/iliyamo/hotel-reservation/internal/repository"
    "github.com/iliyamo/hotel-reservation/internal/service"
)

// HotelHandler serves the public hotel listing and the admin edits.
type HotelHandler struct {
    Hotels       *repository.HotelRepo
    Reservations *repository.ReservationRepo
    Admin        *service.HotelService
}

func NewHotelHandler(h *repository.HotelRepo, r *repository.ReservationRepo, admin *service.HotelService) *HotelHandler {
    return &HotelHandler{Hotels: h, Reservations: r, Admin: admin}
}

type createHotelReq struct {
    HotelID    flexID `json:"hotel_id"`
    Name       string `json:"name"`
    Location   string `json:"location"`
    TotalRooms int    `json:"total_rooms"`
}

type updateHotelReq struct {
    Name       *string `json:"name"`
    Location   *string `json:"location"`
    TotalRooms *int    `json:"total_rooms"`
}

// List returns every hotel with its current availability.
func (h *HotelHandler) List(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()
    hotels, err := h.Hotels.List(ctx)
    if err != nil {
        return writeError(c, err)
    }
    out := make([]model.HotelDTO, 0, len(hotels))
    for _, ht := range hotels {
        out = append(out, ht.DTO())
    }
    return c.JSON(http.StatusOK, echo.Map{"hotels": out})
}

// Get returns one hotel.
func (h *HotelHandler) Get(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()
    ht, err := h.Hotels.GetByID(ctx, c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, ht.DTO())
}

// Create adds a hotel with every room available.  The id is generated when
// omitted.
func (h *HotelHandler) Create(c echo.Context) error {
    var req createHotelReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    id := strings.TrimSpace(string(req.HotelID))
    if id == "" {
        id = uuid.NewString()
    }
    ht, err := model.NewHotel(id, req.Name, req.Location, req.TotalRooms)
    if err != nil {
        return writeError(c, err)
    }
    ctx, cancel := requestCtx(c)
    defer cancel()
    if err := h.Hotels.Create(ctx, ht); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, ht.DTO())
}

// Update edits name, location or capacity.
func (h *HotelHandler) Update(c echo.Context) error {
    var req updateHotelReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Name == nil && req.Location == nil && req.TotalRooms == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "nothing to update"})
    }
    ctx, cancel := requestCtx(c)
    defer cancel()
    ht, err := h.Admin.Update(ctx, c.Param("id"), service.HotelUpdate{
        Name: req.Name, Location: req.Location, TotalRooms: req.TotalRooms,
    })
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, ht.DTO())
}

// ListReservations lists a hotel's reservations; ?active=true hides
// cancelled ones.
func (h *HotelHandler) ListReservations(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()
    id := c.Param("id")
    if _, err := h.Hotels.GetByID(ctx, id); err != nil {
        return writeError(c, err)
    }
    activeOnly := strings.EqualFold(c.QueryParam("active"), "true")
    recs, err := h.Reservations.ListByHotel(ctx, id, activeOnly)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": reservationViews(recs)})
}
