package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/service"
	"github.com/kiruthick103/studenthub-api/internal/utils"
)

// StudyPlanHandler wires planner HTTP routes for the authenticated student.
type StudyPlanHandler struct {
	service  service.StudyPlanService
	students service.StudentService
	logger   zerolog.Logger
}

// NewStudyPlanHandler constructs the handler.
func NewStudyPlanHandler(service service.StudyPlanService, students service.StudentService, logger zerolog.Logger) *StudyPlanHandler {
	return &StudyPlanHandler{
		service:  service,
		students: students,
		logger:   logger.With().Str("component", "study_plan_handler").Logger(),
	}
}

// Register attaches planner endpoints to the student group.
func (h *StudyPlanHandler) Register(router fiber.Router) {
	router.Get("/study-plan", h.overview)
	router.Post("/study-plan/tasks", h.addTask)
	router.Post("/study-plan/tasks/:id/complete", h.completeTask)
	router.Post("/study-plan/weak-subjects", h.addWeakSubject)
}

func (h *StudyPlanHandler) overview(c *fiber.Ctx) error {
	profile, ok, err := h.resolveStudent(c)
	if !ok {
		return err
	}

	overview, err := h.service.Overview(c.Context(), profile)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "study plan retrieved", overview)
}

func (h *StudyPlanHandler) addTask(c *fiber.Ctx) error {
	profile, ok, err := h.resolveStudent(c)
	if !ok {
		return err
	}

	var payload dto.TaskCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	task, err := h.service.AddTask(c.Context(), profile, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "study task added", task)
}

func (h *StudyPlanHandler) completeTask(c *fiber.Ctx) error {
	profile, ok, err := h.resolveStudent(c)
	if !ok {
		return err
	}

	taskID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	plan, err := h.service.CompleteTask(c.Context(), profile, taskID)
	if err != nil {
		if errors.Is(err, service.ErrStudyTaskNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "study task not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "study task completed", plan)
}

func (h *StudyPlanHandler) addWeakSubject(c *fiber.Ctx) error {
	profile, ok, err := h.resolveStudent(c)
	if !ok {
		return err
	}

	var payload dto.WeakSubjectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	plan, err := h.service.AddWeakSubject(c.Context(), profile, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "weak subject added", plan)
}

// resolveStudent maps the authenticated user onto their student profile ID.
// On failure the returned error is already a rendered response.
func (h *StudyPlanHandler) resolveStudent(c *fiber.Ctx) (uint, bool, error) {
	profile, err := h.students.GetByUserID(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return 0, false, utils.SendError(c, fiber.StatusNotFound, "student profile not found")
		}
		return 0, false, h.internalError(c, err)
	}

	return profile.ID, true, nil
}

func (h *StudyPlanHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, "unknown subject")
	case errors.Is(err, service.ErrInvalidPriority):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid priority")
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		return h.internalError(c, err)
	}
}

func (h *StudyPlanHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
