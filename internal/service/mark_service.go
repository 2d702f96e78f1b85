package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/grading"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// Mark errors surfaced to handlers.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrInvalidExamType = errors.New("invalid exam type")
)

// MarkService records assessment results and builds grade reports.
type MarkService interface {
	Upsert(ctx context.Context, teacherID uint, payload dto.MarkUpsertRequest) (models.Mark, error)
	Summary(ctx context.Context, studentID uint) (dto.MarkSummaryResponse, error)
}

type markService struct {
	marks         repository.MarkRepository
	students      repository.StudentRepository
	subjects      repository.SubjectRepository
	events        EventPublisher
	validator     *validator.Validate
	weakThreshold float64
	logger        zerolog.Logger
	tracer        trace.Tracer
	now           func() time.Time
}

// NewMarkService builds a new mark service. A non-positive weak threshold
// falls back to the grading default.
func NewMarkService(marks repository.MarkRepository, students repository.StudentRepository, subjects repository.SubjectRepository, events EventPublisher, validate *validator.Validate, weakThreshold float64, logger zerolog.Logger) MarkService {
	if weakThreshold <= 0 {
		weakThreshold = grading.DefaultWeakThreshold
	}

	return &markService{
		marks:         marks,
		students:      students,
		subjects:      subjects,
		events:        events,
		validator:     validate,
		weakThreshold: weakThreshold,
		logger:        logger.With().Str("component", "mark_service").Logger(),
		tracer:        otel.Tracer("github.com/kiruthick103/studenthub-api/internal/service/mark"),
		now:           time.Now,
	}
}

func (s *markService) Upsert(ctx context.Context, teacherID uint, payload dto.MarkUpsertRequest) (models.Mark, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Mark{}, err
	}

	if !models.IsValidExamType(payload.ExamType) {
		return models.Mark{}, ErrInvalidExamType
	}

	attrs := []attribute.KeyValue{
		attribute.Int("mark.student_id", int(payload.StudentID)),
		attribute.Int("mark.subject_id", int(payload.SubjectID)),
		attribute.String("mark.exam_type", payload.ExamType),
	}
	spanCtx, span := s.tracer.Start(ctx, "marks.upsert", trace.WithAttributes(attrs...))
	defer span.End()

	student, err := s.students.GetByID(spanCtx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Mark{}, ErrStudentNotFound
		}

		return models.Mark{}, err
	}

	if _, err := s.subjects.GetByID(spanCtx, payload.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Mark{}, ErrSubjectNotFound
		}

		return models.Mark{}, err
	}

	result, err := grading.Grade(payload.MarksObtained, payload.TotalMarks)
	if err != nil {
		return models.Mark{}, err
	}

	mark, err := s.marks.GetByUpsertKey(spanCtx, payload.StudentID, payload.SubjectID, payload.ExamType)
	switch {
	case err == nil:
		mark.MarksObtained = payload.MarksObtained
		mark.TotalMarks = payload.TotalMarks
		mark.Percentage = result.Percentage
		mark.Grade = result.Letter
		mark.Remarks = payload.Remarks
		mark.MarkedBy = teacherID
		mark.ExamDate = s.now()
		if err := s.marks.Update(spanCtx, &mark); err != nil {
			span.RecordError(err)
			return models.Mark{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		mark = models.Mark{
			StudentID:     payload.StudentID,
			SubjectID:     payload.SubjectID,
			ExamType:      payload.ExamType,
			MarksObtained: payload.MarksObtained,
			TotalMarks:    payload.TotalMarks,
			Percentage:    result.Percentage,
			Grade:         result.Letter,
			Remarks:       payload.Remarks,
			MarkedBy:      teacherID,
			ExamDate:      s.now(),
		}
		if err := s.marks.Create(spanCtx, &mark); err != nil {
			span.RecordError(err)
			return models.Mark{}, err
		}
	default:
		span.RecordError(err)
		return models.Mark{}, err
	}

	s.logger.Info().
		Uint("student_id", payload.StudentID).
		Uint("subject_id", payload.SubjectID).
		Str("exam_type", payload.ExamType).
		Str("grade", result.Letter).
		Msg("mark recorded")

	if s.events != nil {
		message := fmt.Sprintf("New %s grade posted: %s", payload.ExamType, result.Letter)
		if _, err := s.events.Publish(spanCtx, dto.EventPublishRequest{
			UserID:  strconv.FormatUint(uint64(student.UserID), 10),
			Type:    "marks_updated",
			Message: message,
		}); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish mark event")
		}
	}

	return mark, nil
}

func (s *markService) Summary(ctx context.Context, studentID uint) (dto.MarkSummaryResponse, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MarkSummaryResponse{}, ErrStudentNotFound
		}

		return dto.MarkSummaryResponse{}, err
	}

	marks, err := s.marks.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.MarkSummaryResponse{}, err
	}

	groups := grading.GroupBySubject(marks)

	return dto.MarkSummaryResponse{
		Marks:        marks,
		SubjectWise:  groups,
		Average:      grading.StudentAverage(marks),
		WeakSubjects: grading.WeakSubjects(groups, s.weakThreshold),
	}, nil
}
