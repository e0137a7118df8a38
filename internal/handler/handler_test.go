package handler

import (
    "encoding/json"
    "errors"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-reservation/internal/model"
    "github.com/iliyamo/hotel-reservation/internal/repository"
    "github.com/iliyamo/hotel-reservation/internal/service"
)

func do(t *testing.T, h echo.HandlerFunc, method, body string) (*httptest.ResponseRecorder, map[string]any) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(method, "/", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if err := h(c); err != nil {
        t.Fatalf("handler returned error: %v", err)
    }
    var out map[string]any
    if rec.Body.Len() > 0 {
        if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
            t.Fatalf("decode body %q: %v", rec.Body.String(), err)
        }
    }
    return rec, out
}

func TestCustomerCreate_Validation(t *testing.T) {
    h := NewCustomerHandler(nil, nil)
    cases := []struct {
        name, body, field string
    }{
        {"bad email", `{"customer_id":"1","name":"Alice","email":"alice.example.com"}`, "email"},
        {"empty name", `{"customer_id":1,"name":"  ","email":"alice@example.com"}`, "name"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            rec, out := do(t, h.Create, http.MethodPost, tc.body)
            if rec.Code != http.StatusBadRequest {
                t.Fatalf("expected 400, got %d", rec.Code)
            }
            if out["field"] != tc.field {
                t.Fatalf("expected field %q, got %v", tc.field, out["field"])
            }
        })
    }
}

func TestCustomerUpdate_EmptyBody(t *testing.T) {
    h := NewCustomerHandler(nil, nil)
    rec, _ := do(t, h.Update, http.MethodPatch, `{}`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", rec.Code)
    }
}

func TestHotelCreate_Validation(t *testing.T) {
    h := NewHotelHandler(nil, nil, nil)
    rec, out := do(t, h.Create, http.MethodPost, `{"hotel_id":"H1","name":"Hilton","location":"NY","total_rooms":0}`)
    if rec.Code != http.StatusBadRequest || out["field"] != "total_rooms" {
        t.Fatalf("expected 400 on total_rooms, got %d %v", rec.Code, out)
    }
}

func TestReservationCreate_BodyShapes(t *testing.T) {
    h := NewReservationHandler(&service.BookingService{}, nil)
    cases := []struct {
        name, body string
        field      string
    }{
        {"neither shape", `{"customer_id":"C1","hotel_id":"H1"}`, ""},
        {"both shapes", `{"customer_id":"C1","hotel_id":"H1","date":"2026-02-21","check_in":"2026-02-21"}`, ""},
        {"bad booking date", `{"customer_id":"C1","hotel_id":"H1","date":"2026/02/21"}`, "date"},
        {"checkout before checkin", `{"reservation_id":"R1","customer_id":1,"hotel_id":2,"check_in":"2026-02-25","check_out":"2026-02-21"}`, "check_out"},
        {"missing reservation id", `{"customer_id":"C1","hotel_id":"H1","check_in":"2026-02-21","check_out":"2026-02-22"}`, "reservation_id"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            rec, out := do(t, h.Create, http.MethodPost, tc.body)
            if rec.Code != http.StatusBadRequest {
                t.Fatalf("expected 400, got %d: %v", rec.Code, out)
            }
            if tc.field != "" && out["field"] != tc.field {
                t.Fatalf("expected field %q, got %v", tc.field, out["field"])
            }
        })
    }
}

func TestFlexID(t *testing.T) {
    var v struct {
        A flexID `json:"a"`
        B flexID `json:"b"`
        C flexID `json:"c"`
    }
    if err := json.Unmarshal([]byte(`{"a":"x-1","b":42,"c":null}`), &v); err != nil {
        t.Fatalf("unmarshal: %v", err)
    }
    if v.A != "x-1" || v.B != "42" || v.C != "" {
        t.Fatalf("unexpected values %+v", v)
    }
    if err := json.Unmarshal([]byte(`{"a":true}`), &v); err == nil {
        t.Fatalf("booleans must be rejected")
    }
}

func TestWriteError(t *testing.T) {
    cases := []struct {
        err  error
        want int
    }{
        {&model.ValidationError{Field: "email", Msg: "bad"}, http.StatusBadRequest},
        {repository.ErrCustomerNotFound, http.StatusNotFound},
        {fmt.Errorf("wrapped: %w", repository.ErrHotelNotFound), http.StatusNotFound},
        {repository.ErrConflict, http.StatusConflict},
        {fmt.Errorf("hotel H1: %w", model.ErrNoRoomsAvailable), http.StatusConflict},
        {service.ErrAlreadyCancelled, http.StatusConflict},
        {repository.ErrForbidden, http.StatusForbidden},
        {errors.New("boom"), http.StatusInternalServerError},
    }
    for _, tc := range cases {
        h := func(c echo.Context) error { return writeError(c, tc.err) }
        rec, out := do(t, h, http.MethodGet, "")
        if rec.Code != tc.want {
            t.Errorf("%v: expected %d, got %d", tc.err, tc.want, rec.Code)
        }
        if _, ok := out["error"]; !ok {
            t.Errorf("%v: body must carry an error field: %v", tc.err, out)
        }
    }
}

func TestRegister_ShortPassword(t *testing.T) {
    h := &AuthHandler{}
    rec, _ := do(t, h.Register, http.MethodPost, `{"email":"a@b.co","password":"short"}`)
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d", rec.Code)
    }
}

func TestHealth_NoDB(t *testing.T) {
    rec, out := do(t, Health(nil), http.MethodGet, "")
    if rec.Code != http.StatusOK || out["status"] != "ok" {
        t.Fatalf("unexpected health response %d %v", rec.Code, out)
    }
}
