package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/service"
	"github.com/kiruthick103/studenthub-api/internal/utils"
)

const dateQueryLayout = "2006-01-02"

// AttendanceHandler wires attendance HTTP routes.
type AttendanceHandler struct {
	service  service.AttendanceService
	students service.StudentService
	logger   zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, students service.StudentService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service:  service,
		students: students,
		logger:   logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// RegisterTeacher attaches attendance entry endpoints to the teacher group.
func (h *AttendanceHandler) RegisterTeacher(router fiber.Router) {
	router.Post("/attendance", h.mark)
	router.Get("/attendance", h.listByDate)
	router.Get("/students/:id/attendance", h.studentReport)
}

// RegisterStudent attaches the self-service report to the student group.
func (h *AttendanceHandler) RegisterStudent(router fiber.Router) {
	router.Get("/attendance", h.myReport)
}

func (h *AttendanceHandler) mark(c *fiber.Ctx) error {
	var payload dto.AttendanceMarkRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Mark(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrInvalidAttendanceStatus):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid attendance status")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccess(c, "attendance marked", record)
}

func (h *AttendanceHandler) listByDate(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateQueryLayout, raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid date")
		}
		date = parsed
	}

	records, err := h.service.ListByDate(c.Context(), date)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "attendance retrieved", records)
}

func (h *AttendanceHandler) studentReport(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	return h.report(c, id)
}

func (h *AttendanceHandler) myReport(c *fiber.Ctx) error {
	profile, err := h.students.GetByUserID(c.Context(), userIDFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student profile not found")
		}
		return h.internalError(c, err)
	}

	return h.report(c, profile.ID)
}

func (h *AttendanceHandler) report(c *fiber.Ctx, studentID uint) error {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(dateQueryLayout, raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid from date")
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(dateQueryLayout, raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid to date")
		}
		to = &parsed
	}

	report, err := h.service.Report(c.Context(), studentID, from, to)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "attendance report retrieved", report)
}

func (h *AttendanceHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
