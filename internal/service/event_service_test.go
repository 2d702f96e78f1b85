package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

func newEventService(t *testing.T, name string) EventService {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db := openTestDB(t, name)
	return NewEventService(repository.NewEventRepository(db), redisClient, "studenthub", nil, testValidator(), zerolog.Nop())
}

func TestEventServicePublishDeliversToSubscriber(t *testing.T) {
	svc := newEventService(t, "eventdeliver")
	ctx := context.Background()

	channel, cleanup := svc.Subscribe("42")
	defer cleanup()

	published, err := svc.Publish(ctx, dto.EventPublishRequest{
		UserID:  "42",
		Type:    "marks_updated",
		Message: "New quiz grade posted: A",
	})
	require.NoError(t, err)
	require.NotZero(t, published.ID)

	select {
	case received := <-channel:
		require.Equal(t, published.ID, received.ID)
		require.Equal(t, "marks_updated", received.Type)
	case <-time.After(time.Second):
		t.Fatal("expected event on subscriber channel")
	}
}

func TestEventServiceSanitizesMessage(t *testing.T) {
	svc := newEventService(t, "eventsanitize")
	ctx := context.Background()

	published, err := svc.Publish(ctx, dto.EventPublishRequest{
		UserID:  "42",
		Type:    "announcement",
		Message: `<script>alert("x")</script>Exam moved to Friday`,
	})
	require.NoError(t, err)
	require.Equal(t, "Exam moved to Friday", published.Message)

	_, err = svc.Publish(ctx, dto.EventPublishRequest{
		UserID:  "42",
		Type:    "announcement",
		Message: `<script>alert("x")</script>`,
	})
	require.Error(t, err)
}

func TestEventServiceListAndMarkRead(t *testing.T) {
	svc := newEventService(t, "eventlist")
	ctx := context.Background()

	first, err := svc.Publish(ctx, dto.EventPublishRequest{UserID: "7", Type: "a", Message: "first"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, dto.EventPublishRequest{UserID: "7", Type: "b", Message: "second"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, dto.EventPublishRequest{UserID: "8", Type: "c", Message: "other user"})
	require.NoError(t, err)

	events, err := svc.List(ctx, "7", 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	read, err := svc.MarkRead(ctx, first.ID, "7")
	require.NoError(t, err)
	require.NotNil(t, read.ReadAt)

	_, err = svc.List(ctx, "  ", 10, 0)
	require.Error(t, err)
}
