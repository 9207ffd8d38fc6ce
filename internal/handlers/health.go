package handlers

import (
	"github.com/inanin-user/crm-system-sub001/internal/repositories"
	"github.com/inanin-user/crm-system-sub001/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// Health reports database and cache connectivity.
func Health(c *fiber.Ctx) error {
	status := fiber.Map{
		"database": "up",
		"cache":    "up",
	}
	healthy := true

	sqlDB, err := repositories.DB.DB()
	if err != nil || sqlDB.PingContext(c.Context()) != nil {
		status["database"] = "down"
		healthy = false
	}

	if repositories.CacheService == nil || repositories.CacheService.HealthCheck(c.Context()) != nil {
		status["cache"] = "down"
		healthy = false
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"message": "degraded",
			"data":    status,
		})
	}
	return response.Success(c, "ok", status)
}
