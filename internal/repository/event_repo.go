package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// EventRepository defines data operations for realtime events.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Event, error)
	MarkRead(ctx context.Context, id uint, userID string, at time.Time) (models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository instantiates the repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var events []models.Event
	err := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *eventRepository) MarkRead(ctx context.Context, id uint, userID string, at time.Time) (models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		First(&event).Error
	if err != nil {
		return models.Event{}, err
	}

	if event.ReadAt == nil {
		event.ReadAt = &at
		if err := r.db.WithContext(ctx).Save(&event).Error; err != nil {
			return models.Event{}, err
		}
	}

	return event, nil
}
