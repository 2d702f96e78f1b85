package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// StudyPlanRepository defines data operations for study plans.
type StudyPlanRepository interface {
	GetByStudent(ctx context.Context, studentID uint) (models.StudyPlan, error)
	Create(ctx context.Context, plan *models.StudyPlan) error
	Save(ctx context.Context, plan *models.StudyPlan) error
	AddTask(ctx context.Context, task *models.StudyTask) error
	DeleteByStudent(ctx context.Context, studentID uint) error
}

type studyPlanRepository struct {
	db *gorm.DB
}

// NewStudyPlanRepository instantiates the repository.
func NewStudyPlanRepository(db *gorm.DB) StudyPlanRepository {
	return &studyPlanRepository{db: db}
}

func (r *studyPlanRepository) GetByStudent(ctx context.Context, studentID uint) (models.StudyPlan, error) {
	var plan models.StudyPlan
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_date ASC")
		}).
		Preload("WeakSubjects").
		Where("student_id = ?", studentID).
		First(&plan).Error
	if err != nil {
		return models.StudyPlan{}, err
	}

	return plan, nil
}

func (r *studyPlanRepository) Create(ctx context.Context, plan *models.StudyPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *studyPlanRepository) Save(ctx context.Context, plan *models.StudyPlan) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(plan).Error
}

func (r *studyPlanRepository) AddTask(ctx context.Context, task *models.StudyTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *studyPlanRepository) DeleteByStudent(ctx context.Context, studentID uint) error {
	var plan models.StudyPlan
	err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&plan).Error
}
