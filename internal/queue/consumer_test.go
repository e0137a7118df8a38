package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"
)

func TestHandleMessage_AppendsLine(t *testing.T) {
    dir := filepath.Join(t.TempDir(), "events")
    c := NewConsumer("amqp://unused", dir)

    ev := ReservationEvent{
        Type:           EventBooked,
        ReservationID:  "C1-H1-2026-02-21",
        CustomerID:     "C1",
        HotelID:        "H1",
        CheckIn:        "2026-02-21",
        CheckOut:       "2026-02-21",
        AvailableRooms: 4,
    }
    ev.Stamp(time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))
    body, err := json.Marshal(ev)
    if err != nil {
        t.Fatal(err)
    }
    for i := 0; i < 2; i++ {
        if err := c.HandleMessage(body); err != nil {
            t.Fatalf("HandleMessage: %v", err)
        }
    }

    data, err := os.ReadFile(filepath.Join(dir, ReservationLogFile))
    if err != nil {
        t.Fatalf("read log: %v", err)
    }
    lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
    if len(lines) != 2 {
        t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), data)
    }
    for _, want := range []string{"[2026-02-01T12:00:00Z]", "reservation.booked", "reservation_id=C1-H1-2026-02-21", "available_rooms=4"} {
        if !strings.Contains(lines[0], want) {
            t.Fatalf("line missing %q: %s", want, lines[0])
        }
    }
}

func TestHandleMessage_Rejects(t *testing.T) {
    c := NewConsumer("amqp://unused", t.TempDir())
    cases := map[string]string{
        "not json":     "{",
        "unknown type": `{"type":"reservation.moved","reservation_id":"R1"}`,
        "missing id":   `{"type":"reservation.cancelled"}`,
    }
    for name, body := range cases {
        t.Run(name, func(t *testing.T) {
            if err := c.HandleMessage([]byte(body)); err == nil {
                t.Fatalf("expected error")
            }
        })
    }
    if _, err := os.Stat(filepath.Join(c.LogDir, ReservationLogFile)); !os.IsNotExist(err) {
        t.Fatalf("rejected messages must not create the log file, stat err=%v", err)
    }
}

func TestLogLine_UntouchedInventory(t *testing.T) {
    ev := ReservationEvent{Type: EventRecorded, ReservationID: "R1", AvailableRooms: -1}
    if !strings.Contains(ev.LogLine(), "available_rooms=n/a") {
        t.Fatalf("unexpected line %q", ev.LogLine())
    }
}
