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
	"github.com/kiruthick103/studenthub-api/internal/grading"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// Submission errors surfaced to handlers.
var (
	ErrSubmissionNotFound      = errors.New("submission not found")
	ErrAssignmentNotOpen       = errors.New("assignment is not open for submissions")
	ErrSubmissionAlreadyGraded = errors.New("submission already graded")
)

// SubmissionService handles assignment submissions and grading.
type SubmissionService interface {
	Submit(ctx context.Context, studentID uint, payload dto.SubmissionCreateRequest) (models.Submission, error)
	Grade(ctx context.Context, submissionID uint, payload dto.GradeSubmissionRequest) (models.Submission, error)
	List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	students    repository.StudentRepository
	events      EventPublisher
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService builds a new submission service.
func NewSubmissionService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, students repository.StudentRepository, events EventPublisher, validate *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		students:    students,
		events:      events,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, studentID uint, payload dto.SubmissionCreateRequest) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrAssignmentNotFound
		}

		return models.Submission{}, err
	}

	if assignment.Status != models.AssignmentStatusPublished {
		return models.Submission{}, ErrAssignmentNotOpen
	}

	now := s.now()
	status := models.SubmissionStatusSubmitted
	if assignment.IsPastDue(now) {
		status = models.SubmissionStatusLate
	}

	submission, err := s.submissions.GetByAssignmentAndStudent(ctx, payload.AssignmentID, studentID)
	switch {
	case err == nil:
		if submission.IsGraded() {
			return models.Submission{}, ErrSubmissionAlreadyGraded
		}
		submission.FileURL = payload.FileURL
		submission.Notes = payload.Notes
		submission.SubmittedAt = now
		submission.Status = status
		if err := s.submissions.Update(ctx, &submission); err != nil {
			return models.Submission{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = models.Submission{
			AssignmentID: payload.AssignmentID,
			StudentID:    studentID,
			FileURL:      payload.FileURL,
			Notes:        payload.Notes,
			SubmittedAt:  now,
			Status:       status,
		}
		if err := s.submissions.Create(ctx, &submission); err != nil {
			return models.Submission{}, err
		}
	default:
		return models.Submission{}, err
	}

	s.logger.Info().
		Uint("assignment_id", payload.AssignmentID).
		Uint("student_id", studentID).
		Str("status", status).
		Msg("submission received")

	return submission, nil
}

func (s *submissionService) Grade(ctx context.Context, submissionID uint, payload dto.GradeSubmissionRequest) (models.Submission, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Submission{}, err
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}

		return models.Submission{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return models.Submission{}, err
	}

	result, err := grading.Grade(payload.Marks, assignment.TotalMarks)
	if err != nil {
		return models.Submission{}, err
	}

	marks := payload.Marks
	submission.Marks = &marks
	submission.LetterGrade = result.Letter
	submission.Feedback = payload.Feedback
	submission.Status = models.SubmissionStatusGraded

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return models.Submission{}, err
	}

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Str("letter_grade", submission.LetterGrade).
		Msg("submission graded")

	if s.events != nil {
		if student, err := s.students.GetByID(ctx, submission.StudentID); err == nil {
			message := fmt.Sprintf("Your submission for %q was graded: %s", assignment.Title, result.Letter)
			if _, err := s.events.Publish(ctx, dto.EventPublishRequest{
				UserID:  strconv.FormatUint(uint64(student.UserID), 10),
				Type:    "submission_graded",
				Message: message,
			}); err != nil {
				s.logger.Warn().Err(err).Msg("failed to publish grading event")
			}
		}
	}

	return submission, nil
}

func (s *submissionService) List(ctx context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	return s.submissions.List(ctx, filter)
}
