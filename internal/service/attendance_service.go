package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/planner"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// ErrInvalidAttendanceStatus indicates an unknown attendance status value.
var ErrInvalidAttendanceStatus = errors.New("invalid attendance status")

const attendanceDateLayout = "2006-01-02"

// AttendanceService records daily presence and builds attendance reports.
type AttendanceService interface {
	Mark(ctx context.Context, teacherID uint, payload dto.AttendanceMarkRequest) (models.Attendance, error)
	Report(ctx context.Context, studentID uint, from, to *time.Time) (dto.AttendanceReportResponse, error)
	ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	students   repository.StudentRepository
	events     EventPublisher
	validator  *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAttendanceService builds a new attendance service. The event
// publisher may be nil when realtime notifications are disabled.
func NewAttendanceService(attendance repository.AttendanceRepository, students repository.StudentRepository, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		attendance: attendance,
		students:   students,
		events:     events,
		validator:  validate,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
		now:        time.Now,
	}
}

func (s *attendanceService) Mark(ctx context.Context, teacherID uint, payload dto.AttendanceMarkRequest) (models.Attendance, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Attendance{}, err
	}

	if !models.IsValidAttendanceStatus(payload.Status) {
		return models.Attendance{}, ErrInvalidAttendanceStatus
	}

	date, err := time.Parse(attendanceDateLayout, payload.Date)
	if err != nil {
		return models.Attendance{}, fmt.Errorf("invalid attendance date: %w", err)
	}
	day := planner.TruncateToDay(date)

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Attendance{}, ErrStudentNotFound
		}

		return models.Attendance{}, err
	}

	record, err := s.attendance.GetByStudentAndDate(ctx, payload.StudentID, day)
	switch {
	case err == nil:
		record.Status = payload.Status
		record.SubjectID = payload.SubjectID
		record.MarkedBy = teacherID
		record.Notes = payload.Notes
		if err := s.attendance.Update(ctx, &record); err != nil {
			return models.Attendance{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.Attendance{
			StudentID: payload.StudentID,
			Date:      day,
			Status:    payload.Status,
			SubjectID: payload.SubjectID,
			MarkedBy:  teacherID,
			Notes:     payload.Notes,
		}
		if err := s.attendance.Create(ctx, &record); err != nil {
			return models.Attendance{}, err
		}
	default:
		return models.Attendance{}, err
	}

	s.logger.Info().
		Uint("student_id", payload.StudentID).
		Str("status", payload.Status).
		Time("date", day).
		Msg("attendance marked")

	if s.events != nil {
		message := fmt.Sprintf("Attendance for %s recorded as %s", day.Format(attendanceDateLayout), payload.Status)
		if _, err := s.events.Publish(ctx, dto.EventPublishRequest{
			UserID:  strconv.FormatUint(uint64(student.UserID), 10),
			Type:    "attendance_updated",
			Message: message,
		}); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish attendance event")
		}
	}

	return record, nil
}

func (s *attendanceService) Report(ctx context.Context, studentID uint, from, to *time.Time) (dto.AttendanceReportResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttendanceReportResponse{}, ErrStudentNotFound
		}

		return dto.AttendanceReportResponse{}, err
	}

	records, err := s.attendance.ListByStudent(ctx, studentID, repository.AttendanceFilter{From: from, To: to})
	if err != nil {
		return dto.AttendanceReportResponse{}, err
	}

	return dto.AttendanceReportResponse{
		Attendance: records,
		Stats:      buildAttendanceStats(records),
	}, nil
}

func (s *attendanceService) ListByDate(ctx context.Context, date time.Time) ([]models.Attendance, error) {
	return s.attendance.ListByDate(ctx, planner.TruncateToDay(date))
}

func buildAttendanceStats(records []models.Attendance) dto.AttendanceStats {
	stats := dto.AttendanceStats{Total: len(records)}
	attended := 0

	for _, record := range records {
		switch record.Status {
		case models.AttendanceStatusPresent:
			stats.Present++
		case models.AttendanceStatusAbsent:
			stats.Absent++
		case models.AttendanceStatusLate:
			stats.Late++
		case models.AttendanceStatusExcused:
			stats.Excused++
		}
		if record.Attended() {
			attended++
		}
	}

	if stats.Total > 0 {
		stats.Percentage = float64(attended) / float64(stats.Total) * 100
	}

	return stats
}
