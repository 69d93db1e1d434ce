package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"dbhost/pkg/constants"
	"dbhost/pkg/interfaces"
	"dbhost/pkg/logger"
)

// RedisPublisher broadcasts notifications over Redis pub/sub, one channel per database
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisPublisher creates a publisher on channels "<prefix>:<database uuid>"
func NewRedisPublisher(client *redis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix}
}

// Channel returns the pub/sub channel of a database
func (p *RedisPublisher) Channel(database string) string {
	return fmt.Sprintf("%s:%s", p.prefix, database)
}

// For returns a notifier publishing on the database's channel
func (p *RedisPublisher) For(database string) interfaces.Notifier {
	return &redisNotifier{publisher: p, database: database}
}

// Publish sends one notification. Publish errors are returned, Notify only logs them.
func (p *RedisPublisher) Publish(ctx context.Context, n interfaces.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := p.client.Publish(ctx, p.Channel(n.Database), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Subscribe streams the notifications of a database until ctx is done.
// The returned channel is closed when the subscription ends.
func (p *RedisPublisher) Subscribe(ctx context.Context, database string) (<-chan interfaces.Notification, error) {
	sub := p.client.Subscribe(ctx, p.Channel(database))
	// Wait for the subscription confirmation so no message published afterwards is missed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to notifications: %w", err)
	}

	out := make(chan interfaces.Notification)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var n interfaces.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					logger.WarnCtx(ctx, "Dropping malformed notification on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

type redisNotifier struct {
	publisher *RedisPublisher
	database  string
}

func (n *redisNotifier) Notify(ctx context.Context, level constants.NotificationLevel, message string) {
	err := n.publisher.Publish(ctx, interfaces.Notification{Level: level, Message: message, Database: n.database})
	if err != nil {
		logger.WarnCtx(ctx, "Failed to broadcast notification for database %s: %v", n.database, err)
	}
}
