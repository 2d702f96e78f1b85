package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// StudentFilter narrows student profile queries.
type StudentFilter struct {
	Class   *string
	Section *string
	Search  *string
}

// ClassCount is one bucket of the class distribution aggregate.
type ClassCount struct {
	Class string `json:"class"`
	Count int64  `json:"count"`
}

// StudentRepository defines data operations for student profiles.
type StudentRepository interface {
	List(ctx context.Context, filter StudentFilter) ([]models.StudentProfile, error)
	GetByID(ctx context.Context, id uint) (models.StudentProfile, error)
	GetByUserID(ctx context.Context, userID uint) (models.StudentProfile, error)
	Create(ctx context.Context, profile *models.StudentProfile) error
	Update(ctx context.Context, profile *models.StudentProfile) error
	Delete(ctx context.Context, id uint) error
	ClassDistribution(ctx context.Context) ([]ClassCount, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository instantiates the repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.StudentProfile{}).
		Preload("User").
		Preload("Subjects")
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.StudentProfile, error) {
	query := r.baseQuery(ctx)

	if filter.Class != nil {
		query = query.Where("class = ?", *filter.Class)
	}

	if filter.Section != nil {
		query = query.Where("section = ?", *filter.Section)
	}

	if filter.Search != nil {
		pattern := "%" + *filter.Search + "%"
		query = query.Joins("JOIN users ON users.id = student_profiles.user_id").
			Where("LOWER(users.full_name) LIKE LOWER(?) OR LOWER(users.email) LIKE LOWER(?)", pattern, pattern)
	}

	var profiles []models.StudentProfile
	if err := query.Order("roll_number ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.baseQuery(ctx).First(&profile, id).Error; err != nil {
		return models.StudentProfile{}, err
	}

	return profile, nil
}

func (r *studentRepository) GetByUserID(ctx context.Context, userID uint) (models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := r.baseQuery(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.StudentProfile{}, err
	}

	return profile, nil
}

func (r *studentRepository) Create(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *studentRepository) Update(ctx context.Context, profile *models.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.StudentProfile{}, id).Error
}

func (r *studentRepository) ClassDistribution(ctx context.Context) ([]ClassCount, error) {
	var counts []ClassCount
	err := r.db.WithContext(ctx).Model(&models.StudentProfile{}).
		Select("class, COUNT(*) as count").
		Group("class").
		Order("class ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	return counts, nil
}
