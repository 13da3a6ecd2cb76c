package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"hotel-ops/pkg/config"
	"hotel-ops/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	PushQueueName   = "room_notifications"
	PushExchange    = "notifications"
	PushRoutingKey  = "room"
	MaxPushPriority = 10
	publishTimeout  = 5 * time.Second
)

// PushTask is the message handed to the device push service for one stored notification.
type PushTask struct {
	FanoutID       string    `json:"fanout_id,omitempty"`
	NotificationID int64     `json:"notification_id"`
	RoomID         int64     `json:"room_id"`
	Message        string    `json:"message"`
	Priority       string    `json:"priority"`
	CreatedTime    time.Time `json:"created_time"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
	mu      sync.Mutex
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		PushExchange, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		PushQueueName, // name
		true,          // durable
		false,         // delete when unused
		false,         // exclusive
		false,         // no-wait
		amqp.Table{
			"x-max-priority": MaxPushPriority,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		PushQueueName,  // queue name
		PushRoutingKey, // routing key
		PushExchange,   // exchange
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishPushTask publishes a persistent push task. Priority is clamped to 0..MaxPushPriority.
func (c *Client) PublishPushTask(ctx context.Context, task PushTask, priority int) error {
	if priority < 0 {
		priority = 0
	}
	if priority > MaxPushPriority {
		priority = MaxPushPriority
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal push task: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	c.mu.Lock()
	err = c.channel.PublishWithContext(
		ctx,
		PushExchange,   // exchange
		PushRoutingKey, // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Priority:     uint8(priority),
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	c.mu.Unlock()
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish push task for notification %d: %v", task.NotificationID, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// GetQueueLength returns the number of messages waiting for the push service.
func (c *Client) GetQueueLength() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	queue, err := c.channel.QueueInspect(PushQueueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
