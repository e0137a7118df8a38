package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-reservation/internal/model"
    "github.com/iliyamo/hotel-reservation/internal/repository"
    "github.com/iliyamo/hotel-reservation/internal/service"
)

// ReservationHandler books, records, shows and cancels reservations.
type ReservationHandler struct {
    Booking      *service.BookingService
    Reservations *repository.ReservationRepo
}

func NewReservationHandler(b *service.BookingService, r *repository.ReservationRepo) *ReservationHandler {
    return &ReservationHandler{Booking: b, Reservations: r}
}

// reservationReq covers both creation modes.  A body with date books one
// night through the hotel's inventory; a body with check_in and check_out
// records the reservation as given.
type reservationReq struct {
    ReservationID flexID `json:"reservation_id"`
    CustomerID    flexID `json:"customer_id"`
    HotelID       flexID `json:"hotel_id"`
    Date          string `json:"date"`
    CheckIn       string `json:"check_in"`
    CheckOut      string `json:"check_out"`
}

type reservationView struct {
    model.ReservationDTO
    Status    string    `json:"status"`
    HoldsRoom bool      `json:"holds_room"`
    CreatedAt time.Time `json:"created_at"`
}

func reservationViews(recs []*repository.ReservationRecord) []reservationView {
    out := make([]reservationView, 0, len(recs))
    for _, rec := range recs {
        out = append(out, viewOf(rec))
    }
    return out
}

func viewOf(rec *repository.ReservationRecord) reservationView {
    return reservationView{
        ReservationDTO: model.ReservationDTO{
            ReservationID: rec.ID,
            CustomerID:    rec.CustomerID,
            HotelID:       rec.HotelID,
            CheckIn:       model.FormatDate(rec.CheckIn),
            CheckOut:      model.FormatDate(rec.CheckOut),
        },
        Status:    rec.Status,
        HoldsRoom: rec.HoldsRoom,
        CreatedAt: rec.CreatedAt,
    }
}

// Create dispatches on the body shape.
func (h *ReservationHandler) Create(c echo.Context) error {
    var req reservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    date := strings.TrimSpace(req.Date)
    direct := req.ReservationID != "" || req.CheckIn != "" || req.CheckOut != ""
    switch {
    case date != "" && direct:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "send either date or reservation_id/check_in/check_out, not both"})
    case date == "" && !direct:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date or check_in/check_out required"})
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    if date != "" {
        res, err := h.Booking.Book(ctx, string(req.CustomerID), string(req.HotelID), date)
        if err != nil {
            return writeError(c, err)
        }
        return c.JSON(http.StatusCreated, echo.Map{
            "reservation":     res.DTO(),
            "holds_room":      true,
            "available_rooms": res.Hotel().AvailableRooms(),
        })
    }

    res, err := h.Booking.Record(ctx, service.RecordInput{
        ReservationID: string(req.ReservationID),
        CustomerID:    string(req.CustomerID),
        HotelID:       string(req.HotelID),
        CheckIn:       req.CheckIn,
        CheckOut:      req.CheckOut,
    })
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "reservation": res.DTO(),
        "holds_room":  false,
        "nights":      res.Nights(),
    })
}

// Get returns one reservation with its status.
func (h *ReservationHandler) Get(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()
    rec, err := h.Reservations.GetByID(ctx, c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, viewOf(rec))
}

// Cancel cancels a reservation.  A second cancel is a 409.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()
    out, err := h.Booking.Cancel(ctx, c.Param("id"))
    if err != nil {
        return writeError(c, err)
    }
    body := echo.Map{
        "reservation": out.Reservation.DTO(),
        "status":      repository.StatusCancelled,
        "room_freed":  out.RoomFreed,
    }
    if out.AvailableRooms >= 0 {
        body["available_rooms"] = out.AvailableRooms
    }
    return c.JSON(http.StatusOK, body)
}
