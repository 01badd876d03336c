package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/redis/go-redis/v9"
)

// Message types published on the notification channel.
const (
	MessagePresentation  = "presentation"
	MessageLocationError = "location_error"
)

// Publisher is the part of the Redis client used for notifications. *redis.Client satisfies it.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Message is the JSON envelope published for each notification.
type Message struct {
	Type         string                `json:"type"`
	Presentation *models.Presentation  `json:"presentation,omitempty"`
	Error        *LocationErrorPayload `json:"error,omitempty"`
}

type LocationErrorPayload struct {
	Kind    models.LocationErrorKind `json:"kind"`
	Message string                   `json:"message"`
}

// RedisNotifier publishes notifications as JSON on a Redis pub/sub channel.
type RedisNotifier struct {
	client  Publisher
	channel string
	log     *slog.Logger
}

// OpenRedis returns a client for addr, or nil when addr is empty.
func OpenRedis(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password})
}

func NewRedisNotifier(client Publisher, channel string, log *slog.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel, log: log}
}

func (n *RedisNotifier) Present(ctx context.Context, presentation models.Presentation) {
	n.publish(ctx, Message{Type: MessagePresentation, Presentation: &presentation})
}

func (n *RedisNotifier) LocationError(ctx context.Context, locErr models.LocationError) {
	n.publish(ctx, Message{
		Type:  MessageLocationError,
		Error: &LocationErrorPayload{Kind: locErr.Kind, Message: locErr.Kind.Message()},
	})
}

func (n *RedisNotifier) publish(ctx context.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		n.log.ErrorContext(ctx, "Failed to encode notification", "type", msg.Type, "error", err)
		return
	}

	if err = n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		n.log.ErrorContext(ctx, "Failed to publish notification", "channel", n.channel, "type", msg.Type, "error", err)
		return
	}

	n.log.DebugContext(ctx, "Notification published", "channel", n.channel, "type", msg.Type)
}
