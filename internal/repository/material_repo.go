package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// MaterialRepository defines data operations for study materials.
type MaterialRepository interface {
	List(ctx context.Context, subjectID *uint) ([]models.StudyMaterial, error)
	GetByID(ctx context.Context, id uint) (models.StudyMaterial, error)
	Create(ctx context.Context, material *models.StudyMaterial) error
	IncrementDownloads(ctx context.Context, id uint) error
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository instantiates the repository.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) List(ctx context.Context, subjectID *uint) ([]models.StudyMaterial, error) {
	query := r.db.WithContext(ctx).Model(&models.StudyMaterial{}).
		Preload("Subject").
		Where("is_active = ?", true)

	if subjectID != nil {
		query = query.Where("subject_id = ?", *subjectID)
	}

	var materials []models.StudyMaterial
	if err := query.Order("created_at DESC").Find(&materials).Error; err != nil {
		return nil, err
	}

	return materials, nil
}

func (r *materialRepository) GetByID(ctx context.Context, id uint) (models.StudyMaterial, error) {
	var material models.StudyMaterial
	if err := r.db.WithContext(ctx).Preload("Subject").First(&material, id).Error; err != nil {
		return models.StudyMaterial{}, err
	}

	return material, nil
}

func (r *materialRepository) Create(ctx context.Context, material *models.StudyMaterial) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) IncrementDownloads(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.StudyMaterial{}).
		Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
}
