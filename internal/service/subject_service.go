package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// ErrSubjectCodeTaken indicates the subject code is already in use.
var ErrSubjectCodeTaken = errors.New("subject code already in use")

// SubjectService manages the subject catalogue.
type SubjectService interface {
	List(ctx context.Context, activeOnly bool) ([]models.Subject, error)
	Get(ctx context.Context, id uint) (models.Subject, error)
	Create(ctx context.Context, payload dto.SubjectCreateRequest) (models.Subject, error)
}

type subjectService struct {
	subjects  repository.SubjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubjectService builds a new subject service.
func NewSubjectService(subjects repository.SubjectRepository, validate *validator.Validate, logger zerolog.Logger) SubjectService {
	return &subjectService{
		subjects:  subjects,
		validator: validate,
		logger:    logger.With().Str("component", "subject_service").Logger(),
	}
}

func (s *subjectService) List(ctx context.Context, activeOnly bool) ([]models.Subject, error) {
	return s.subjects.List(ctx, activeOnly)
}

func (s *subjectService) Get(ctx context.Context, id uint) (models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Subject{}, ErrSubjectNotFound
		}

		return models.Subject{}, err
	}

	return subject, nil
}

func (s *subjectService) Create(ctx context.Context, payload dto.SubjectCreateRequest) (models.Subject, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Subject{}, err
	}

	code := strings.ToUpper(strings.TrimSpace(payload.Code))
	if _, err := s.subjects.GetByCode(ctx, code); err == nil {
		return models.Subject{}, ErrSubjectCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Subject{}, err
	}

	subject := models.Subject{
		Name:        payload.Name,
		Code:        code,
		Description: payload.Description,
		TotalMarks:  payload.TotalMarks,
		PassMarks:   payload.PassMarks,
		Credits:     payload.Credits,
		IsActive:    true,
	}
	if subject.TotalMarks <= 0 {
		subject.TotalMarks = 100
	}
	if subject.PassMarks <= 0 {
		subject.PassMarks = 40
	}
	if subject.Credits <= 0 {
		subject.Credits = 3
	}

	if err := s.subjects.Create(ctx, &subject); err != nil {
		return models.Subject{}, err
	}

	s.logger.Info().Uint("subject_id", subject.ID).Str("code", subject.Code).Msg("subject created")

	return subject, nil
}
