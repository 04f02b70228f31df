package messaging

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"github.com/rabbitmq/amqp091-go"
)

// NotificationsExchange is the topic exchange every notification is published to.
// Routing keys are "notification.<channel>.<type>".
const NotificationsExchange = "coffeehub.notifications"

// ErrNotConnected is returned by Channel while the connection is down and
// the background watcher is still reconnecting.
var ErrNotConnected = errors.New("rabbitmq connection is not available")

// Connection wraps a RabbitMQ connection and its single publishing channel.
// A watcher goroutine reconnects in the background when the broker drops us.
type Connection struct {
	url        string
	maxRetries int
	maxBackoff time.Duration
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	mu         sync.Mutex
	done       chan struct{}
	closed     bool
}

// Dial connects to RabbitMQ, retrying with a growing wait, and declares the topology.
func Dial(url string) (*Connection, error) {
	c := &Connection{url: url, maxRetries: 5, maxBackoff: 30 * time.Second, done: make(chan struct{})}
	conn, ch, err := c.connect()
	if err != nil {
		return nil, fmt.Errorf("failed to establish initial connection: %w", err)
	}
	c.conn, c.channel = conn, ch
	go c.watch(conn.NotifyClose(make(chan *amqp091.Error, 1)))
	return c, nil
}

func (c *Connection) connect() (*amqp091.Connection, *amqp091.Channel, error) {
	var err error
	for i := 0; i < c.maxRetries; i++ {
		var conn *amqp091.Connection
		var ch *amqp091.Channel
		conn, ch, err = c.dial()
		if err == nil {
			return conn, ch, nil
		}

		if i < c.maxRetries-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			utils.ErrorLogger.WithError(err).Warnf("Failed to connect to RabbitMQ, retrying in %v", wait)
			if !c.sleep(wait) {
				return nil, nil, ErrNotConnected
			}
		}
	}
	return nil, nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", c.maxRetries, err)
}

// dial membuka satu koneksi beserta channel dan topology-nya
func (c *Connection) dial() (*amqp091.Connection, *amqp091.Channel, error) {
	conn, err := amqp091.Dial(c.url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	if err := setupTopology(ch); err != nil {
		utils.ErrorLogger.WithError(err).Error("Failed to set up RabbitMQ topology")
		ch.Close()
		conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// watch waits on the connection's close notification and then reconnects
// until it succeeds or Close is called.
func (c *Connection) watch(closing <-chan *amqp091.Error) {
	if closeErr, ok := <-closing; ok {
		utils.ErrorLogger.WithError(closeErr).Warn("RabbitMQ connection lost, reconnecting in background")
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.conn, c.channel = nil, nil
	c.mu.Unlock()

	for attempt := 1; ; attempt++ {
		conn, ch, err := c.dial()
		if err == nil {
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				ch.Close()
				conn.Close()
				return
			}
			c.conn, c.channel = conn, ch
			c.mu.Unlock()
			utils.InfoLogger.Printf("RabbitMQ reconnected after %d attempt(s)", attempt)
			go c.watch(conn.NotifyClose(make(chan *amqp091.Error, 1)))
			return
		}

		wait := time.Duration(attempt) * 2 * time.Second
		if wait > c.maxBackoff {
			wait = c.maxBackoff
		}
		utils.ErrorLogger.WithError(err).Warnf("RabbitMQ reconnect failed, retrying in %v", wait)
		if !c.sleep(wait) {
			return
		}
	}
}

// sleep returns false when Close interrupts the wait.
func (c *Connection) sleep(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-c.done:
		return false
	}
}

func setupTopology(ch *amqp091.Channel) error {
	err := ch.ExchangeDeclare(
		NotificationsExchange, // name
		"topic",               // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s exchange: %w", NotificationsExchange, err)
	}

	// kitchen printers and the staff app read from these
	bindings := []struct {
		queue      string
		routingKey string
	}{
		{"coffeehub.kitchen", "notification.kitchen.*"},
		{"coffeehub.admin", "notification.admin.*"},
		{"coffeehub.customer", "notification.customer.*"},
	}
	for _, b := range bindings {
		_, err = ch.QueueDeclare(
			b.queue, // name
			true,    // durable
			false,   // delete when unused
			false,   // exclusive
			false,   // no-wait
			amqp091.Table{
				"x-message-ttl": 3600000, // 1 hour
			},
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", b.queue, err)
		}
		if err = ch.QueueBind(b.queue, b.routingKey, NotificationsExchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s with routing key %s: %w", b.queue, b.routingKey, err)
		}
	}
	return nil
}

// Channel returns the current channel. It never dials: while the watcher is
// reconnecting it fails fast with ErrNotConnected.
func (c *Connection) Channel() (*amqp091.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.conn == nil || c.conn.IsClosed() || c.channel == nil {
		return nil, ErrNotConnected
	}
	return c.channel, nil
}

func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.done != nil {
		close(c.done)
	}
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
