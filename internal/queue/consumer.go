package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// ReservationLogFile is the file name the consumer appends to inside its
// log directory.
const ReservationLogFile = "reservations.log"

const maxBackoff = 30 * time.Second

// Consumer listens to the reservation.events queue and appends every event
// to <LogDir>/reservations.log.
type Consumer struct {
    URL    string
    LogDir string
}

// NewConsumer returns a consumer for the broker at url.
func NewConsumer(url, logDir string) *Consumer {
    if logDir == "" {
        logDir = "logs"
    }
    return &Consumer{URL: url, LogDir: logDir}
}

// Run connects to RabbitMQ, declares the queue (durable) and consumes until
// ctx is cancelled.  Dial failures and dropped connections are retried with
// exponential backoff capped at 30s; a message that cannot be recorded is
// rejected without requeue so it does not loop.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            log.Printf("events: failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < maxBackoff {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Printf("events: consume loop ended: %v; reconnecting", err)
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("events: set QoS failed: %v", err)
    }
    if _, err := ch.QueueDeclare(ReservationQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(ReservationQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.HandleMessage(d.Body); err != nil {
                log.Printf("events: handle message failed: %v", err)
                _ = d.Nack(false, false)
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// HandleMessage decodes one delivery body and appends it to the log file.
func (c *Consumer) HandleMessage(body []byte) error {
    var ev ReservationEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := ev.Validate(); err != nil {
        return err
    }
    if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", c.LogDir, err)
    }
    f, err := os.OpenFile(filepath.Join(c.LogDir, ReservationLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(ev.LogLine()); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
