package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kiruthick103/studenthub-api/internal/config"
	"github.com/kiruthick103/studenthub-api/internal/utils"
)

var startedAt = time.Now()

// HealthResponse is the payload of the liveness endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Uptime      string    `json:"uptime"`
}

// HealthCheck reports liveness plus basic identity of the running service.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "service healthy", HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Uptime:      time.Since(startedAt).Round(time.Second).String(),
		})
	}
}
