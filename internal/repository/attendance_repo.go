package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/models"
)

// AttendanceFilter narrows attendance queries to a date window.
type AttendanceFilter struct {
	From *time.Time
	To   *time.Time
}

// AttendanceRepository defines data operations for attendance records.
type AttendanceRepository interface {
	ListByStudent(ctx context.Context, studentID uint, filter AttendanceFilter) ([]models.Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error)
	GetByStudentAndDate(ctx context.Context, studentID uint, date time.Time) (models.Attendance, error)
	Create(ctx context.Context, attendance *models.Attendance) error
	Update(ctx context.Context, attendance *models.Attendance) error
	CountPresentOn(ctx context.Context, date time.Time) (int64, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository instantiates the repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListByStudent(ctx context.Context, studentID uint, filter AttendanceFilter) ([]models.Attendance, error) {
	query := r.db.WithContext(ctx).Model(&models.Attendance{}).Where("student_id = ?", studentID)

	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}

	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}

	var records []models.Attendance
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("date = ?", date).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *attendanceRepository) GetByStudentAndDate(ctx context.Context, studentID uint, date time.Time) (models.Attendance, error) {
	var record models.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("date = ?", date).
		First(&record).Error
	if err != nil {
		return models.Attendance{}, err
	}

	return record, nil
}

func (r *attendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

func (r *attendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}

func (r *attendanceRepository) CountPresentOn(ctx context.Context, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Attendance{}).
		Where("date = ?", date).
		Where("status = ?", models.AttendanceStatusPresent).
		Count(&count).Error
	return count, err
}
