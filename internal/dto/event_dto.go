package dto

import (
	"time"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// EventPublishRequest carries an event destined for one user's channel.
type EventPublishRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Type    string `json:"type" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// EventResponse is the wire view of a realtime event.
type EventResponse struct {
	ID        uint       `json:"id"`
	UserID    string     `json:"user_id"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewEventResponse maps an event model onto its wire view.
func NewEventResponse(event models.Event) EventResponse {
	return EventResponse{
		ID:        event.ID,
		UserID:    event.UserID,
		Type:      event.Type,
		Message:   event.Message,
		ReadAt:    event.ReadAt,
		CreatedAt: event.CreatedAt,
	}
}

// NewEventResponseSlice maps a slice of event models.
func NewEventResponseSlice(events []models.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, NewEventResponse(event))
	}
	return responses
}
