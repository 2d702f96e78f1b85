package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/grading"
	"github.com/kiruthick103/studenthub-api/internal/service"
	"github.com/kiruthick103/studenthub-api/internal/utils"
)

// MarkHandler wires grading HTTP routes.
type MarkHandler struct {
	service  service.MarkService
	students service.StudentService
	logger   zerolog.Logger
}

// NewMarkHandler constructs the handler.
func NewMarkHandler(service service.MarkService, students service.StudentService, logger zerolog.Logger) *MarkHandler {
	return &MarkHandler{
		service:  service,
		students: students,
		logger:   logger.With().Str("component", "mark_handler").Logger(),
	}
}

// RegisterTeacher attaches mark entry endpoints to the teacher group.
func (h *MarkHandler) RegisterTeacher(router fiber.Router) {
	router.Post("/marks", h.upsert)
	router.Get("/students/:id/marks", h.studentSummary)
}

// RegisterStudent attaches the self-service report to the student group.
func (h *MarkHandler) RegisterStudent(router fiber.Router) {
	router.Get("/marks", h.mySummary)
}

func (h *MarkHandler) upsert(c *fiber.Ctx) error {
	var payload dto.MarkUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	mark, err := h.service.Upsert(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "mark recorded", mark)
}

func (h *MarkHandler) studentSummary(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.service.Summary(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "marks retrieved", summary)
}

func (h *MarkHandler) mySummary(c *fiber.Ctx) error {
	profile, err := h.students.GetByUserID(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student profile not found")
		}
		return h.internalError(c, err)
	}

	summary, err := h.service.Summary(c.Context(), profile.ID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "marks retrieved", summary)
}

func (h *MarkHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrSubjectNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "subject not found")
	case errors.Is(err, service.ErrInvalidExamType):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid exam type")
	case errors.Is(err, grading.ErrInvalidScore):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid score")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *MarkHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
