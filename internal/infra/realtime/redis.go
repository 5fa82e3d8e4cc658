package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

const subscriberBuffer = 32

// Message is the payload carried on a user's channel.
type Message struct {
	Event        string              `json:"event"`
	Notification domain.Notification `json:"notification"`
}

// RedisBus delivers notifications over Redis pub/sub, one channel per recipient.
type RedisBus struct {
	client redis.UniversalClient
	logger Logger
}

func NewRedisBus(client redis.UniversalClient, logger Logger) *RedisBus {
	return &RedisBus{client: client, logger: logger}
}

// Publish pushes the notification to its recipient's channel. Delivery is fire-and-forget:
// nobody listening is not an error.
func (b *RedisBus) Publish(ctx context.Context, push domain.NotificationPush) error {
	data, err := json.Marshal(Message{Event: domain.NotificationEvent, Notification: push.Notification})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	channel := domain.UserChannel(push.Recipient)
	receivers, err := b.client.Publish(ctx, channel, data).Result()
	if err != nil {
		return fmt.Errorf("%w: channel=%s: %v", ErrPublish, channel, err)
	}

	b.logger.Info("Realtime: published %s to %s (receivers=%d, appointment=%s)",
		domain.NotificationEvent, channel, receivers, push.AppointmentID)
	return nil
}

// Subscribe listens on the user's channel until ctx is cancelled, then closes the returned channel.
func (b *RedisBus) Subscribe(ctx context.Context, userID uuid.UUID) (<-chan Message, error) {
	channel := domain.UserChannel(userID)
	pubsub := b.client.Subscribe(ctx, channel)

	// Wait for the subscription confirmation so early publishes are not lost.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: channel=%s: %v", ErrSubscribe, channel, err)
	}

	out := make(chan Message, subscriberBuffer)
	go b.forward(ctx, channel, pubsub, out)

	return out, nil
}

func (b *RedisBus) forward(ctx context.Context, channel string, pubsub *redis.PubSub, out chan<- Message) {
	defer close(out)
	defer pubsub.Close()

	in := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}

			var m Message
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				b.logger.Warn("Realtime: dropping malformed message on %s: %v", channel, err)
				continue
			}

			select {
			case out <- m:
			default:
				b.logger.Warn("Realtime: subscriber buffer full on %s, dropping notification %s", channel, m.Notification.ID)
			}
		}
	}
}

// Ping checks the Redis connection.
func (b *RedisBus) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
