package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/service"
	"github.com/kiruthick103/studenthub-api/internal/utils"
)

// MaterialHandler wires study material HTTP routes.
type MaterialHandler struct {
	service service.MaterialService
	logger  zerolog.Logger
}

// NewMaterialHandler constructs the handler.
func NewMaterialHandler(service service.MaterialService, logger zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: service,
		logger:  logger.With().Str("component", "material_handler").Logger(),
	}
}

// Register attaches read endpoints to any authenticated group.
func (h *MaterialHandler) Register(router fiber.Router) {
	router.Get("/materials", h.list)
	router.Get("/materials/:id/download", h.download)
}

// RegisterTeacher attaches the sharing endpoint to the teacher group.
func (h *MaterialHandler) RegisterTeacher(router fiber.Router) {
	router.Post("/materials", h.create)
}

func (h *MaterialHandler) list(c *fiber.Ctx) error {
	var subjectID *uint
	if raw := c.Query("subject_id"); raw != "" {
		parsed, err := parseQueryInt(c, "subject_id")
		if err != nil || parsed < 0 {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid subject id")
		}
		id := uint(parsed)
		subjectID = &id
	}

	materials, err := h.service.List(c.Context(), subjectID)
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "materials retrieved", materials)
}

func (h *MaterialHandler) create(c *fiber.Ctx) error {
	var payload dto.MaterialCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	material, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectNotFound):
			return utils.SendError(c, fiber.StatusBadRequest, "unknown subject")
		case errors.Is(err, service.ErrInvalidMaterialType):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid material type")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			return h.internalError(c, err)
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "material shared", material)
}

func (h *MaterialHandler) download(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	material, err := h.service.Download(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "material not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "material retrieved", material)
}

func (h *MaterialHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
