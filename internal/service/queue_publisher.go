package service

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/hotel-reservation/internal/queue"
)

// Publisher delivers reservation events after their transaction commits.
type Publisher interface {
    Publish(ctx context.Context, ev q.ReservationEvent) error
}

// AMQPPublisher publishes events to the durable reservation.events queue.
// Each call dials its own connection, so a broker outage only affects the
// events raised while it lasts.
type AMQPPublisher struct {
    URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher { return &AMQPPublisher{URL: url} }

// Publish sends ev as a persistent JSON message.  Errors are logged and
// returned so the caller can choose to ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, ev q.ReservationEvent) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        log.Printf("rabbitmq: dial failed: %v", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Printf("rabbitmq: channel open failed: %v", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(q.ReservationQueueName, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Type:         ev.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", q.ReservationQueueName, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}

// LogPublisher writes events to the process log.  It stands in when no
// broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, ev q.ReservationEvent) error {
    log.Printf("events: %s", ev.LogLine())
    return nil
}
