package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/kiruthick103/studenthub-api/internal/service"
	"github.com/kiruthick103/studenthub-api/internal/utils"
)

// AnalyticsHandler wires analytics HTTP routes.
type AnalyticsHandler struct {
	service  service.AnalyticsService
	students service.StudentService
	logger   zerolog.Logger
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service service.AnalyticsService, students service.StudentService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:  service,
		students: students,
		logger:   logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// RegisterTeacher attaches the school-wide dashboard to the teacher group.
func (h *AnalyticsHandler) RegisterTeacher(router fiber.Router) {
	router.Get("/analytics", h.teacherAnalytics)
	router.Get("/students/:id/analytics", h.studentAnalytics)
}

// RegisterStudent attaches the self-service dashboard to the student group.
func (h *AnalyticsHandler) RegisterStudent(router fiber.Router) {
	router.Get("/analytics", h.myAnalytics)
}

func (h *AnalyticsHandler) teacherAnalytics(c *fiber.Ctx) error {
	analytics, err := h.service.TeacherAnalytics(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "analytics retrieved", analytics)
}

func (h *AnalyticsHandler) studentAnalytics(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	analytics, err := h.service.StudentAnalytics(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "analytics retrieved", analytics)
}

func (h *AnalyticsHandler) myAnalytics(c *fiber.Ctx) error {
	profile, err := h.students.GetByUserID(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student profile not found")
		}
		return h.internalError(c, err)
	}

	analytics, err := h.service.StudentAnalytics(c.Context(), profile.ID)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "analytics retrieved", analytics)
}

func (h *AnalyticsHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
