package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// ErrAnnouncementNotFound indicates the requested announcement does not exist.
var ErrAnnouncementNotFound = errors.New("announcement not found")

// AnnouncementService posts and lists broadcast messages.
type AnnouncementService interface {
	Create(ctx context.Context, teacherID uint, payload dto.AnnouncementCreateRequest) (models.Announcement, error)
	ListForRole(ctx context.Context, role string) ([]models.Announcement, error)
	MarkRead(ctx context.Context, announcementID, userID uint) error
}

type announcementService struct {
	announcements repository.AnnouncementRepository
	validator     *validator.Validate
	sanitizer     *bluemonday.Policy
	logger        zerolog.Logger
	now           func() time.Time
}

// NewAnnouncementService builds a new announcement service.
func NewAnnouncementService(announcements repository.AnnouncementRepository, validate *validator.Validate, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		announcements: announcements,
		validator:     validate,
		sanitizer:     bluemonday.UGCPolicy(),
		logger:        logger.With().Str("component", "announcement_service").Logger(),
		now:           time.Now,
	}
}

func (s *announcementService) Create(ctx context.Context, teacherID uint, payload dto.AnnouncementCreateRequest) (models.Announcement, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Announcement{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return models.Announcement{}, errors.New("announcement content empty after sanitization")
	}

	audience := payload.TargetAudience
	if audience == "" {
		audience = models.AudienceAll
	}

	priority := payload.Priority
	if priority == "" {
		priority = models.AnnouncementPriorityNormal
	}

	announcement := models.Announcement{
		Title:          strings.TrimSpace(payload.Title),
		Content:        content,
		PostedBy:       teacherID,
		TargetAudience: audience,
		Priority:       priority,
		IsActive:       true,
	}

	if payload.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, payload.ExpiresAt)
		if err != nil {
			return models.Announcement{}, fmt.Errorf("invalid expiry: %w", err)
		}
		if !expiresAt.After(s.now()) {
			return models.Announcement{}, fmt.Errorf("expiry must be in the future")
		}
		announcement.ExpiresAt = &expiresAt
	}

	if err := s.announcements.Create(ctx, &announcement); err != nil {
		return models.Announcement{}, err
	}

	s.logger.Info().
		Uint("announcement_id", announcement.ID).
		Str("audience", announcement.TargetAudience).
		Msg("announcement posted")

	return announcement, nil
}

func (s *announcementService) ListForRole(ctx context.Context, role string) ([]models.Announcement, error) {
	audiences := []string{models.AudienceAll}
	switch role {
	case models.RoleStudent:
		audiences = append(audiences, models.AudienceStudents)
	case models.RoleTeacher:
		audiences = append(audiences, models.AudienceTeachers)
	}

	return s.announcements.ListActive(ctx, audiences)
}

func (s *announcementService) MarkRead(ctx context.Context, announcementID, userID uint) error {
	if _, err := s.announcements.GetByID(ctx, announcementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}

		return err
	}

	return s.announcements.MarkRead(ctx, announcementID, userID, s.now())
}
