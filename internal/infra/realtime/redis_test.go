package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iglimehmetaj/service-platform2/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newBus(t *testing.T) (*RedisBus, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisBus(client, nopLogger{}), mr
}

func TestRedisBus_PublishSubscribe(t *testing.T) {
	bus, _ := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := uuid.New()
	apptID := uuid.New()

	ch, err := bus.Subscribe(ctx, userID)
	require.NoError(t, err)

	n := domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      domain.NotificationStatusChange,
		Message:   domain.StatusChangeMessage(domain.StatusConfirmed, domain.SideCompany),
		RelatedID: &apptID,
	}
	require.NoError(t, bus.Publish(ctx, domain.NotificationPush{AppointmentID: apptID, Recipient: userID, Notification: n}))

	select {
	case msg := <-ch:
		assert.Equal(t, domain.NotificationEvent, msg.Event)
		assert.Equal(t, n.ID, msg.Notification.ID)
		assert.Equal(t, apptID, *msg.Notification.RelatedID)
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not delivered")
	}
}

func TestRedisBus_ChannelsArePerUser(t *testing.T) {
	bus, _ := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := uuid.New()
	ch, err := bus.Subscribe(ctx, listener)
	require.NoError(t, err)

	other := uuid.New()
	require.NoError(t, bus.Publish(ctx, domain.NotificationPush{Recipient: other, Notification: domain.Notification{ID: uuid.New(), UserID: other}}))

	select {
	case msg := <-ch:
		t.Fatalf("unexpected message for another user: %+v", msg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRedisBus_SubscribeClosesOnCancel(t *testing.T) {
	bus, _ := newBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Subscribe(ctx, uuid.New())
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription channel was not closed")
	}
}

func TestRedisBus_PublishFailsWhenRedisDown(t *testing.T) {
	bus, mr := newBus(t)
	mr.Close()

	err := bus.Publish(context.Background(), domain.NotificationPush{Recipient: uuid.New()})
	assert.ErrorIs(t, err, ErrPublish)
}
