package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// SubjectAverage is one subject's mean raw marks across all students.
type SubjectAverage struct {
	SubjectID uint    `json:"subject_id"`
	Average   float64 `json:"average"`
}

// MarkRepository defines data operations for assessment marks.
type MarkRepository interface {
	ListByStudent(ctx context.Context, studentID uint) ([]models.Mark, error)
	GetByUpsertKey(ctx context.Context, studentID, subjectID uint, examType string) (models.Mark, error)
	Create(ctx context.Context, mark *models.Mark) error
	Update(ctx context.Context, mark *models.Mark) error
	SubjectAverages(ctx context.Context) ([]SubjectAverage, error)
}

type markRepository struct {
	db *gorm.DB
}

// NewMarkRepository instantiates the repository.
func NewMarkRepository(db *gorm.DB) MarkRepository {
	return &markRepository{db: db}
}

func (r *markRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Mark, error) {
	var marks []models.Mark
	err := r.db.WithContext(ctx).Model(&models.Mark{}).
		Preload("Subject").
		Where("student_id = ?", studentID).
		Order("exam_date DESC").
		Find(&marks).Error
	if err != nil {
		return nil, err
	}

	return marks, nil
}

func (r *markRepository) GetByUpsertKey(ctx context.Context, studentID, subjectID uint, examType string) (models.Mark, error) {
	var mark models.Mark
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("subject_id = ?", subjectID).
		Where("exam_type = ?", examType).
		First(&mark).Error
	if err != nil {
		return models.Mark{}, err
	}

	return mark, nil
}

func (r *markRepository) Create(ctx context.Context, mark *models.Mark) error {
	return r.db.WithContext(ctx).Create(mark).Error
}

func (r *markRepository) Update(ctx context.Context, mark *models.Mark) error {
	return r.db.WithContext(ctx).Save(mark).Error
}

func (r *markRepository) SubjectAverages(ctx context.Context) ([]SubjectAverage, error) {
	var averages []SubjectAverage
	err := r.db.WithContext(ctx).Model(&models.Mark{}).
		Select("subject_id, AVG(marks_obtained) as average").
		Group("subject_id").
		Scan(&averages).Error
	if err != nil {
		return nil, err
	}

	return averages, nil
}
