// Package queue contains the background consumer that listens to the
// order.completed queue and records each dispatched e-ticket in
// <dir>/orders.log.
package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "strings"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/concert-ticketing/internal/format"
)

// StartOrderConsumer connects to RabbitMQ, declares the order.completed
// queue (durable) and consumes it until ctx is cancelled.  Each message is
// appended to logDir/orders.log as a single line.  Connection failures are
// retried with exponential backoff; bad messages are rejected without
// requeue so the consumer keeps going.
func StartOrderConsumer(ctx context.Context, url, logDir string) error {
    backoff := time.Second
    for {
        if err := ctx.Err(); err != nil {
            return err
        }
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("order-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = consumeLoop(ctx, conn, logDir)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        log.Printf("order-consumer: consume loop ended: %v; reconnecting", err)
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

func consumeLoop(ctx context.Context, conn *amqp.Connection, logDir string) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("order-consumer: set QoS failed: %v", err)
    }

    if _, err := ch.QueueDeclare(OrderCompletedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.ConsumeWithContext(ctx, OrderCompletedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := HandleMessage(logDir, d.Body); err != nil {
            log.Printf("order-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// HandleMessage decodes an OrderCompletedEvent and appends its log line.
func HandleMessage(logDir string, body []byte) error {
    var ev OrderCompletedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.OrderNumber == "" {
        return errors.New("event without order number")
    }
    if err := os.MkdirAll(logDir, 0o755); err != nil {
        return fmt.Errorf("mkdir %s: %w", logDir, err)
    }
    f, err := os.OpenFile(filepath.Join(logDir, "orders.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(FormatLogLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLogLine renders the orders.log line for an event, newline included.
func FormatLogLine(ev OrderCompletedEvent) string {
    tickets := make([]string, 0, len(ev.Tickets))
    for _, t := range ev.Tickets {
        tickets = append(tickets, fmt.Sprintf("%s x%d", t.Name, t.Quantity))
    }
    return fmt.Sprintf("[%s] E-ticket dispatched | order=%s | email=%s | concert=%q | date=%s %s | tickets=[%s] | total=%s\n",
        ev.ConfirmedAt, ev.OrderNumber, ev.CustomerEmail, ev.ConcertTitle, ev.Date, ev.Time,
        strings.Join(tickets, ", "), format.Rupiah(ev.Total))
}
