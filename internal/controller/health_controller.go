package controller

import (
	"ai-copilot-be/internal/pkg/serverutils"
	"ai-copilot-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	db        *gorm.DB
	cacheRepo contract.ChatCacheRepository
}

func NewHealthController(db *gorm.DB, cacheRepo contract.ChatCacheRepository) IHealthController {
	return &healthController{
		db:        db,
		cacheRepo: cacheRepo,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1")
	h.Get("/health", c.Health)
}

// Health reports each tier separately. The service stays "degraded" rather
// than down when only the cache is unreachable.
func (c *healthController) Health(ctx *fiber.Ctx) error {
	dbOk := false
	if sqlDB, err := c.db.DB(); err == nil {
		dbOk = sqlDB.PingContext(ctx.Context()) == nil
	}
	cacheOk := c.cacheRepo.Connected(ctx.Context())

	status := "ok"
	if !dbOk && !cacheOk {
		status = "down"
	} else if !dbOk || !cacheOk {
		status = "degraded"
	}

	return ctx.JSON(serverutils.SuccessResponse("Health check", fiber.Map{
		"status":   status,
		"database": dbOk,
		"cache":    cacheOk,
	}))
}
