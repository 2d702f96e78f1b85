package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// Material errors surfaced to handlers.
var (
	ErrMaterialNotFound    = errors.New("study material not found")
	ErrInvalidMaterialType = errors.New("invalid material type")
)

// MaterialService manages teacher-shared learning resources.
type MaterialService interface {
	List(ctx context.Context, subjectID *uint) ([]models.StudyMaterial, error)
	Create(ctx context.Context, teacherID uint, payload dto.MaterialCreateRequest) (models.StudyMaterial, error)
	Download(ctx context.Context, id uint) (models.StudyMaterial, error)
}

type materialService struct {
	materials repository.MaterialRepository
	subjects  repository.SubjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewMaterialService builds a new material service.
func NewMaterialService(materials repository.MaterialRepository, subjects repository.SubjectRepository, validate *validator.Validate, logger zerolog.Logger) MaterialService {
	return &materialService{
		materials: materials,
		subjects:  subjects,
		validator: validate,
		logger:    logger.With().Str("component", "material_service").Logger(),
	}
}

func (s *materialService) List(ctx context.Context, subjectID *uint) ([]models.StudyMaterial, error) {
	return s.materials.List(ctx, subjectID)
}

func (s *materialService) Create(ctx context.Context, teacherID uint, payload dto.MaterialCreateRequest) (models.StudyMaterial, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.StudyMaterial{}, err
	}

	if !models.IsValidMaterialType(payload.Type) {
		return models.StudyMaterial{}, ErrInvalidMaterialType
	}

	if _, err := s.subjects.GetByID(ctx, payload.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudyMaterial{}, ErrSubjectNotFound
		}

		return models.StudyMaterial{}, err
	}

	material := models.StudyMaterial{
		Title:       payload.Title,
		Description: payload.Description,
		SubjectID:   payload.SubjectID,
		Type:        payload.Type,
		URL:         payload.URL,
		UploadedBy:  teacherID,
		IsActive:    true,
	}

	if err := s.materials.Create(ctx, &material); err != nil {
		return models.StudyMaterial{}, err
	}

	s.logger.Info().Uint("material_id", material.ID).Str("type", material.Type).Msg("study material shared")

	return material, nil
}

// Download returns the material and bumps its download counter.
func (s *materialService) Download(ctx context.Context, id uint) (models.StudyMaterial, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StudyMaterial{}, ErrMaterialNotFound
		}

		return models.StudyMaterial{}, err
	}

	if err := s.materials.IncrementDownloads(ctx, id); err != nil {
		s.logger.Warn().Err(err).Uint("material_id", id).Msg("failed to bump download counter")
	} else {
		material.Downloads++
	}

	return material, nil
}
