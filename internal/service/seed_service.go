package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

var (
	// ErrSeedDisabled indicates the seeding tools are disabled by configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates the provided token is invalid.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)

// SeedService loads catalogue fixtures into an empty environment.
type SeedService interface {
	SeedSubjects(ctx context.Context, token string, items []models.Subject) (int64, error)
	SeedAnnouncements(ctx context.Context, token string, items []models.Announcement) (int64, error)
}

type seedService struct {
	subjects      repository.SubjectRepository
	announcements repository.AnnouncementRepository
	enabled       bool
	token         string
	logger        zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(subjects repository.SubjectRepository, announcements repository.AnnouncementRepository, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		subjects:      subjects,
		announcements: announcements,
		enabled:       enabled,
		token:         token,
		logger:        logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) SeedSubjects(ctx context.Context, token string, items []models.Subject) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}

	var affected int64
	for i := range items {
		items[i].Code = strings.ToUpper(strings.TrimSpace(items[i].Code))
		if items[i].TotalMarks <= 0 {
			items[i].TotalMarks = 100
		}
		if items[i].PassMarks <= 0 {
			items[i].PassMarks = 40
		}
		items[i].IsActive = true

		_, err := s.subjects.GetByCode(ctx, items[i].Code)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return affected, err
		}

		if err := s.subjects.Create(ctx, &items[i]); err != nil {
			return affected, err
		}
		affected++
	}

	s.logger.Info().Int64("affected", affected).Msg("subjects seeded")
	return affected, nil
}

func (s *seedService) SeedAnnouncements(ctx context.Context, token string, items []models.Announcement) (int64, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if !s.validateToken(token) {
		return 0, ErrSeedUnauthorized
	}

	var affected int64
	for i := range items {
		if items[i].TargetAudience == "" {
			items[i].TargetAudience = models.AudienceAll
		}
		if items[i].Priority == "" {
			items[i].Priority = models.AnnouncementPriorityNormal
		}
		items[i].IsActive = true

		if err := s.announcements.Create(ctx, &items[i]); err != nil {
			return affected, err
		}
		affected++
	}

	s.logger.Info().Int64("affected", affected).Msg("announcements seeded")
	return affected, nil
}

func (s *seedService) validateToken(token string) bool {
	expected := strings.TrimSpace(s.token)
	if expected == "" {
		return false
	}
	return subtleConstantTimeCompare(expected, strings.TrimSpace(token))
}

func subtleConstantTimeCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	mismatch := byte(0)
	for i := 0; i < len(a); i++ {
		mismatch |= a[i] ^ b[i]
	}
	return mismatch == 0
}
