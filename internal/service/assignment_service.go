package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/models"
	"github.com/kiruthick103/studenthub-api/internal/repository"
)

// Assignment errors surfaced to handlers.
var (
	ErrAssignmentNotFound      = errors.New("assignment not found")
	ErrInvalidAssignmentStatus = errors.New("invalid assignment status")
)

// AssignmentService exposes assignment domain use cases.
type AssignmentService interface {
	List(ctx context.Context) ([]models.Assignment, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.StudentAssignmentView, error)
	Get(ctx context.Context, id uint) (models.Assignment, error)
	Create(ctx context.Context, teacherID uint, payload dto.AssignmentCreateRequest) (models.Assignment, error)
	Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (models.Assignment, error)
	Delete(ctx context.Context, id uint) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	submissions repository.SubmissionRepository
	subjects    repository.SubjectRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(assignments repository.AssignmentRepository, submissions repository.SubmissionRepository, subjects repository.SubjectRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		submissions: submissions,
		subjects:    subjects,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) List(ctx context.Context) ([]models.Assignment, error) {
	return s.assignments.List(ctx)
}

func (s *assignmentService) ListForStudent(ctx context.Context, studentID uint) ([]dto.StudentAssignmentView, error) {
	assignments, err := s.assignments.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	filter := repository.SubmissionFilter{StudentID: &studentID}
	submissions, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	byAssignment := make(map[uint]models.Submission, len(submissions))
	for _, submission := range submissions {
		byAssignment[submission.AssignmentID] = submission
	}

	now := s.now()
	views := make([]dto.StudentAssignmentView, 0, len(assignments))
	for _, assignment := range assignments {
		view := dto.StudentAssignmentView{
			Assignment: assignment,
			Overdue:    assignment.IsPastDue(now),
		}
		if submission, ok := byAssignment[assignment.ID]; ok {
			mine := submission
			view.MySubmission = &mine
			view.Overdue = view.Overdue && !submission.IsGraded()
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *assignmentService) Get(ctx context.Context, id uint) (models.Assignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}

		return models.Assignment{}, err
	}

	return assignment, nil
}

func (s *assignmentService) Create(ctx context.Context, teacherID uint, payload dto.AssignmentCreateRequest) (models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assignment{}, err
	}

	dueDate, err := time.Parse(time.RFC3339, payload.DueDate)
	if err != nil {
		return models.Assignment{}, fmt.Errorf("invalid due date: %w", err)
	}

	if !dueDate.After(s.now()) {
		return models.Assignment{}, fmt.Errorf("due date must be in the future")
	}

	status := payload.Status
	if status == "" {
		status = models.AssignmentStatusDraft
	}
	if !isValidAssignmentStatus(status) {
		return models.Assignment{}, ErrInvalidAssignmentStatus
	}

	if _, err := s.subjects.GetByID(ctx, payload.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrSubjectNotFound
		}

		return models.Assignment{}, err
	}

	assignment := models.Assignment{
		Title:       payload.Title,
		Description: payload.Description,
		SubjectID:   payload.SubjectID,
		DueDate:     dueDate,
		TotalMarks:  payload.TotalMarks,
		CreatedBy:   teacherID,
		Status:      status,
	}
	if assignment.TotalMarks <= 0 {
		assignment.TotalMarks = 100
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return models.Assignment{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("assignment created")

	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, id uint, payload dto.AssignmentUpdateRequest) (models.Assignment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Assignment{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Assignment{}, ErrAssignmentNotFound
		}

		return models.Assignment{}, err
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}

	if payload.Description != nil {
		assignment.Description = *payload.Description
	}

	if payload.DueDate != nil {
		dueDate, err := time.Parse(time.RFC3339, *payload.DueDate)
		if err != nil {
			return models.Assignment{}, fmt.Errorf("invalid due date: %w", err)
		}

		if !dueDate.After(s.now()) {
			return models.Assignment{}, fmt.Errorf("due date must be in the future")
		}

		assignment.DueDate = dueDate
	}

	if payload.TotalMarks != nil {
		assignment.TotalMarks = *payload.TotalMarks
	}

	if payload.Status != nil {
		if !isValidAssignmentStatus(*payload.Status) {
			return models.Assignment{}, ErrInvalidAssignmentStatus
		}
		assignment.Status = *payload.Status
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return models.Assignment{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("assignment updated")

	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, id uint) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	s.logger.Info().Uint("assignment_id", id).Msg("assignment deleted")
	return nil
}

func isValidAssignmentStatus(status string) bool {
	switch status {
	case models.AssignmentStatusDraft, models.AssignmentStatusPublished, models.AssignmentStatusClosed:
		return true
	default:
		return false
	}
}
