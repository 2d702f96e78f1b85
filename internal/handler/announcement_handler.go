package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/kiruthick103/studenthub-api/internal/dto"
	"github.com/kiruthick103/studenthub-api/internal/service"
	"github.com/kiruthick103/studenthub-api/internal/utils"
)

// AnnouncementHandler wires announcement HTTP routes.
type AnnouncementHandler struct {
	service service.AnnouncementService
	logger  zerolog.Logger
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service service.AnnouncementService, logger zerolog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		logger:  logger.With().Str("component", "announcement_handler").Logger(),
	}
}

// Register attaches read endpoints to any authenticated group.
func (h *AnnouncementHandler) Register(router fiber.Router) {
	router.Get("/announcements", h.list)
	router.Post("/announcements/:id/read", h.markRead)
}

// RegisterTeacher attaches the posting endpoint to the teacher group.
func (h *AnnouncementHandler) RegisterTeacher(router fiber.Router) {
	router.Post("/announcements", h.create)
}

func (h *AnnouncementHandler) create(c *fiber.Ctx) error {
	var payload dto.AnnouncementCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	announcement, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "announcement posted", announcement)
}

func (h *AnnouncementHandler) list(c *fiber.Ctx) error {
	announcements, err := h.service.ListForRole(c.Context(), userRoleFromContext(c))
	if err != nil {
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "announcements retrieved", announcements)
}

func (h *AnnouncementHandler) markRead(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.MarkRead(c.Context(), id, userIDFromContext(c)); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		return h.internalError(c, err)
	}

	return utils.SendSuccess(c, "announcement marked read", fiber.Map{"id": id})
}

func (h *AnnouncementHandler) internalError(c *fiber.Ctx, err error) error {
	h.logger.Error().Err(err).Msg("internal server error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
