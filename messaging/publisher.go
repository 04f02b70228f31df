package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"github.com/rabbitmq/amqp091-go"
)

// Publisher sends JSON messages to the notifications exchange.
type Publisher struct {
	conn *Connection
}

func NewPublisher(conn *Connection) *Publisher {
	return &Publisher{conn: conn}
}

// Publish marshals msg and publishes it under routingKey.
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg interface{}) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("channel unavailable: %w", err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		NotificationsExchange, // exchange
		routingKey,            // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}

type publisher interface {
	Publish(ctx context.Context, routingKey string, msg interface{}) error
}

// DefaultQueueSize is how many notifications may wait for the broker before
// Notify starts dropping them.
const DefaultQueueSize = 256

type outbound struct {
	ctx        context.Context
	routingKey string
	msg        NotificationMessage
}

// Notifier forwards notifications to the broker. It satisfies the services Notifier:
// Notify only enqueues onto a bounded buffer drained by one goroutine, so a slow or
// unreachable broker never holds up the caller. When the buffer is full the
// notification is dropped and logged.
type Notifier struct {
	pub     publisher
	queue   chan outbound
	done    chan struct{}
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

func NewNotifier(pub *Publisher) *Notifier {
	return newNotifier(pub, DefaultQueueSize)
}

func newNotifier(pub publisher, size int) *Notifier {
	if size <= 0 {
		size = DefaultQueueSize
	}
	n := &Notifier{
		pub:   pub,
		queue: make(chan outbound, size),
		done:  make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *Notifier) run() {
	defer close(n.done)
	for out := range n.queue {
		if err := n.pub.Publish(out.ctx, out.routingKey, out.msg); err != nil {
			utils.ErrorLogger.WithField("type", out.msg.Type).Errorf("Failed to publish notification: %v", err)
		}
	}
}

// Dropped reports how many notifications were discarded because the queue was full.
func (n *Notifier) Dropped() int64 {
	return n.dropped.Load()
}

// Close stops accepting notifications and waits until the queued ones are published.
func (n *Notifier) Close() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()
	<-n.done
}

// NotificationMessage is the wire format consumers see.
type NotificationMessage struct {
	Channel    string                 `json:"channel"`
	CustomerID *uint                  `json:"customer_id,omitempty"`
	Type       string                 `json:"type"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

func RoutingKey(n models.Notification) string {
	typ := strings.ReplaceAll(n.Type, ".", "_")
	if typ == "" {
		typ = "generic"
	}
	return "notification." + n.Channel + "." + typ
}

func (n *Notifier) Notify(ctx context.Context, note models.Notification) {
	msg := NotificationMessage{
		Channel:    note.Channel,
		CustomerID: note.CustomerID,
		Type:       note.Type,
		Title:      note.Title,
		Message:    note.Message,
		Data:       note.Data,
		Timestamp:  note.CreatedAt,
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	out := outbound{
		// request context biasanya sudah selesai saat pesan dikirim
		ctx:        context.WithoutCancel(ctx),
		routingKey: RoutingKey(note),
		msg:        msg,
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		return
	}
	select {
	case n.queue <- out:
	default:
		n.dropped.Add(1)
		utils.ErrorLogger.WithField("type", note.Type).Warn("Notification queue full, dropping message")
	}
}
