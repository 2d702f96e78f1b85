package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/observability"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

const eventBufferSize = 16

// EventPublisher is the narrow publishing surface other services depend on.
type EventPublisher interface {
	Publish(ctx context.Context, payload dto.EventPublishRequest) (dto.EventResponse, error)
}

// EventService publishes and streams realtime events to connected users.
type EventService interface {
	EventPublisher
	List(ctx context.Context, userID string, limit, offset int) ([]dto.EventResponse, error)
	MarkRead(ctx context.Context, id uint, userID string) (dto.EventResponse, error)
	Subscribe(userID string) (<-chan dto.EventResponse, func())
	Start(ctx context.Context)
}

type eventService struct {
	repo         repository.EventRepository
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
	validator    *validator.Validate
	logger       zerolog.Logger
	tracer       trace.Tracer
	sanitizer    *bluemonday.Policy
	broker       *eventBroker
	nodeID       string
}

type eventEnvelope struct {
	Source string            `json:"source"`
	Event  dto.EventResponse `json:"event"`
	SentAt time.Time         `json:"sent_at"`
}

type eventBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan dto.EventResponse]struct{}
}

// NewEventService constructs an event service. The channel base names both
// the redis pub/sub channel and the NATS subject used to fan events out
// across nodes; an empty base disables cross-node delivery.
func NewEventService(repo repository.EventRepository, redisClient *redis.Client, channelBase string, natsConn *nats.Conn, validate *validator.Validate, logger zerolog.Logger) EventService {
	channel := ""
	subject := ""
	if channelBase != "" {
		channel = channelBase + ":events"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".events"
	}

	return &eventService{
		repo:         repo,
		redis:        redisClient,
		redisChannel: channel,
		nats:         natsConn,
		natsSubject:  subject,
		validator:    validate,
		logger:       logger.With().Str("component", "event_service").Logger(),
		tracer:       otel.Tracer("github.com/kiruthick103/studenthub-api/internal/service/event"),
		sanitizer:    bluemonday.StrictPolicy(),
		broker: &eventBroker{
			subscribers: make(map[string]map[chan dto.EventResponse]struct{}),
		},
		nodeID: uuid.NewString(),
	}
}

func (s *eventService) Start(ctx context.Context) {
	if s.redis != nil && s.redisChannel != "" {
		go s.consumeRedis(ctx)
	}
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

func (s *eventService) Publish(ctx context.Context, payload dto.EventPublishRequest) (dto.EventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventResponse{}, err
	}

	cleanMessage := strings.TrimSpace(s.sanitizer.Sanitize(payload.Message))
	if cleanMessage == "" {
		return dto.EventResponse{}, errors.New("event message empty after sanitization")
	}

	attrs := []attribute.KeyValue{
		attribute.String("event.user_id", payload.UserID),
		attribute.String("event.type", payload.Type),
	}

	spanCtx, span := s.tracer.Start(ctx, "events.publish", trace.WithAttributes(attrs...))
	defer span.End()

	model := models.Event{
		UserID:  payload.UserID,
		Type:    payload.Type,
		Message: cleanMessage,
	}

	if err := s.repo.Create(spanCtx, &model); err != nil {
		span.RecordError(err)
		return dto.EventResponse{}, err
	}

	response := dto.NewEventResponse(model)
	s.broker.broadcast(response.UserID, response)
	if err := s.fanOut(spanCtx, response); err != nil {
		s.logger.Warn().Err(err).Msg("failed to fan event out to broker")
	}

	observability.EventsPublished().WithLabelValues(response.Type).Inc()

	return response, nil
}

func (s *eventService) List(ctx context.Context, userID string, limit, offset int) ([]dto.EventResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}

	events, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return dto.NewEventResponseSlice(events), nil
}

func (s *eventService) MarkRead(ctx context.Context, id uint, userID string) (dto.EventResponse, error) {
	attrs := []attribute.KeyValue{
		attribute.String("event.user_id", userID),
	}
	spanCtx, span := s.tracer.Start(ctx, "events.mark_read", trace.WithAttributes(attrs...))
	defer span.End()

	event, err := s.repo.MarkRead(spanCtx, id, userID, time.Now().UTC())
	if err != nil {
		span.RecordError(err)
		return dto.EventResponse{}, err
	}

	return dto.NewEventResponse(event), nil
}

func (s *eventService) Subscribe(userID string) (<-chan dto.EventResponse, func()) {
	channel := make(chan dto.EventResponse, eventBufferSize)

	s.broker.subscribe(userID, channel)
	observability.EventSubscribers().Inc()

	cleanup := func() {
		s.broker.unsubscribe(userID, channel)
		observability.EventSubscribers().Dec()
	}

	return channel, cleanup
}

func (s *eventService) fanOut(ctx context.Context, event dto.EventResponse) error {
	envelope := eventEnvelope{
		Source: s.nodeID,
		Event:  event,
		SentAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	if s.redis != nil && s.redisChannel != "" {
		if err := s.redis.Publish(ctx, s.redisChannel, payload).Err(); err != nil {
			return err
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}

func (s *eventService) consumeRedis(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, s.redisChannel)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error().Err(err).Msg("event redis subscription closed")
			return
		}
		s.handleRemote([]byte(msg.Payload))
	}
}

func (s *eventService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(s.natsSubject, "studenthub-events", func(msg *nats.Msg) {
		s.handleRemote(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats events subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain nats event subscription")
		}
	}()
}

func (s *eventService) handleRemote(payload []byte) {
	var envelope eventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		s.logger.Warn().Err(err).Msg("invalid event envelope payload")
		return
	}

	// Events published locally were already broadcast.
	if envelope.Source == s.nodeID {
		return
	}

	event := envelope.Event
	if event.Type == "" {
		event.Type = "generic"
	}

	observability.EventsPublished().WithLabelValues(event.Type).Inc()
	s.broker.broadcast(event.UserID, event)
}

func (b *eventBroker) subscribe(userID string, ch chan dto.EventResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[userID]; !exists {
		b.subscribers[userID] = make(map[chan dto.EventResponse]struct{})
	}
	b.subscribers[userID][ch] = struct{}{}
}

func (b *eventBroker) unsubscribe(userID string, ch chan dto.EventResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[userID]; ok {
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, userID)
		}
	}
}

func (b *eventBroker) broadcast(userID string, event dto.EventResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subscribers := b.subscribers[userID]
	for ch := range subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
