package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"city-api/pkg/log"

	"github.com/redis/go-redis/v9"
)

// MessageHandler processes Redis pub/sub messages
type MessageHandler interface {
	HandleMessage(ctx context.Context, channel string, message string) error
}

// HandlerFunc adapts a function to MessageHandler
type HandlerFunc func(ctx context.Context, channel string, message string) error

var _ MessageHandler = HandlerFunc(nil)

// HandleMessage implements the MessageHandler interface for HandlerFunc
func (f HandlerFunc) HandleMessage(ctx context.Context, channel string, message string) error {
	return f(ctx, channel, message)
}

// PubSubConfig defines the configuration options for Redis pub/sub
type PubSubConfig struct {
	// ChannelNamespace prefixes channels as namespace::channel
	ChannelNamespace string
	// ReconnectDelay is the wait before resubscribing after the channel closes
	ReconnectDelay time.Duration
	// MaxReconnectAttempts bounds consecutive resubscribe attempts
	MaxReconnectAttempts int
}

// NewPubSubConfig creates a new pub/sub configuration with default values
func NewPubSubConfig() *PubSubConfig {
	return &PubSubConfig{
		ReconnectDelay:       time.Second,
		MaxReconnectAttempts: 10,
	}
}

// WithChannelNamespace sets the namespace for organizing channels
func (psc *PubSubConfig) WithChannelNamespace(namespace string) *PubSubConfig {
	psc.ChannelNamespace = namespace
	return psc
}

func (psc *PubSubConfig) channelName(channel string) string {
	if psc.ChannelNamespace != "" {
		return psc.ChannelNamespace + "::" + channel
	}
	return channel
}

// Publisher handles Redis publishing operations
type Publisher struct {
	client *Client
	config *PubSubConfig
}

// NewPublisher creates a new publisher
func NewPublisher(client *Client, config *PubSubConfig) *Publisher {
	if config == nil {
		config = NewPubSubConfig()
	}
	return &Publisher{client: client, config: config}
}

// PublishJSON publishes message encoded as JSON
func (p *Publisher) PublishJSON(ctx context.Context, channel string, message interface{}) error {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message to JSON: %w", err)
	}
	return p.client.Publish(ctx, p.config.channelName(channel), jsonData)
}

// Subscriber listens on one channel and hands each payload to a handler
type Subscriber struct {
	client            *Client
	config            *PubSubConfig
	handler           MessageHandler
	channel           string
	running           int32
	messagesProcessed int64
}

// NewSubscriber creates a subscriber for channel
func NewSubscriber(client *Client, channel string, handler MessageHandler, config *PubSubConfig) *Subscriber {
	if config == nil {
		config = NewPubSubConfig()
	}
	return &Subscriber{
		client:  client,
		config:  config,
		handler: handler,
		channel: config.channelName(channel),
	}
}

// Start blocks, processing messages until ctx is cancelled or reconnects are exhausted.
func (s *Subscriber) Start(ctx context.Context) {
	atomic.StoreInt32(&s.running, 1)
	defer atomic.StoreInt32(&s.running, 0)

	attempts := 0
	for {
		sub := s.client.GetClient().Subscribe(ctx, s.channel)
		log.Infof("subscribed to channel %s", s.channel)

		s.consume(ctx, sub.Channel())
		_ = sub.Close()

		if ctx.Err() != nil {
			return
		}

		attempts++
		if attempts > s.config.MaxReconnectAttempts {
			log.Errorf("max reconnection attempts reached for channel %s", s.channel)
			return
		}
		log.Warnf("channel %s closed, reconnecting (attempt %d/%d)", s.channel, attempts, s.config.MaxReconnectAttempts)

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.config.ReconnectDelay):
		}
	}
}

func (s *Subscriber) consume(ctx context.Context, ch <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := s.handler.HandleMessage(ctx, msg.Channel, msg.Payload); err != nil {
				log.Errorf("error processing message from channel %s: %v", msg.Channel, err)
				continue
			}
			atomic.AddInt64(&s.messagesProcessed, 1)
		}
	}
}

// HealthCheck reports whether the subscriber loop is running
func (s *Subscriber) HealthCheck() (HealthStatus, map[string]string) {
	details := map[string]string{
		"channel":            s.channel,
		"messages_processed": fmt.Sprintf("%d", atomic.LoadInt64(&s.messagesProcessed)),
	}
	if atomic.LoadInt32(&s.running) == 0 {
		return StatusDown, details
	}
	return StatusUp, details
}
