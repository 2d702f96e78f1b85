package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/grading"
	"github.com/kiruthick103/studenthub-api/internal/repository"
	"github.com/kiruthick103/studenthub-api/internal/service"
	"github.com/kiruthick103/studenthub-api/internal/utils"
)

// SubmissionHandler wires submission HTTP routes.
type SubmissionHandler struct {
	service  service.SubmissionService
	students service.StudentService
	logger   zerolog.Logger
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service service.SubmissionService, students service.StudentService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:  service,
		students: students,
		logger:   logger.With().Str("component", "submission_handler").Logger(),
	}
}

// RegisterTeacher attaches grading endpoints to the teacher group.
func (h *SubmissionHandler) RegisterTeacher(router fiber.Router) {
	router.Get("/submissions", h.list)
	router.Post("/submissions/:id/grade", h.grade)
}

// RegisterStudent attaches the submit endpoint to the student group.
func (h *SubmissionHandler) RegisterStudent(router fiber.Router) {
	router.Post("/submissions", h.submit)
}

func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	filter := repository.SubmissionFilter{}
	if raw := c.Query("assignment_id"); raw != "" {
		id, err := parseQueryInt(c, "assignment_id")
		if err != nil || id < 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid assignment id")
		}
		assignmentID := uint(id)
		filter.AssignmentID = &assignmentID
	}
	if raw := c.Query("student_id"); raw != "" {
		id, err := parseQueryInt(c, "student_id")
		if err != nil || id < 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
		}
		studentID := uint(id)
		filter.StudentID = &studentID
	}

	submissions, err := h.service.List(c.Context(), filter)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	profile, err := h.students.GetByUserID(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student profile not found")
		}
		return h.internalError(c, err)
	}

	var payload dto.SubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Submit(c.Context(), profile.ID, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		case errors.Is(err, service.ErrAssignmentNotOpen):
			return utils.SendError(c, fiber.StatusConflict, "assignment is not open for submissions")
		case errors.Is(err, service.ErrSubmissionAlreadyGraded):
			return utils.SendError(c, fiber.StatusConflict, "submission already graded")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission received", submission)
}

func (h *SubmissionHandler) grade(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GradeSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Grade(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "submission not found")
		case errors.Is(err, grading.ErrInvalidScore):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid score")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "submission graded", submission)
}

func (h *SubmissionHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
