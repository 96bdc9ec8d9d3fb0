package controller

import (
	"ai-copilot-be/internal/dto"
	"ai-copilot-be/internal/pkg/serverutils"
	"ai-copilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompletionController interface {
	RegisterRoutes(r fiber.Router)
	Complete(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	ModelInfo(ctx *fiber.Ctx) error
}

type completionController struct {
	service service.ICompletionService
}

func NewCompletionController(service service.ICompletionService) ICompletionController {
	return &completionController{service: service}
}

func (c *completionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1")
	h.Post("/code-completion", c.Complete)
	h.Get("/code-completion/stats/:user_id", c.Stats)
	h.Get("/model-info", c.ModelInfo)
}

func (c *completionController) Complete(ctx *fiber.Ctx) error {
	var req dto.CodeCompletionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GetCompletion(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Completion served", res))
}

func (c *completionController) Stats(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")
	if userId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}

	res, err := c.service.Stats(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Completion stats", res))
}

func (c *completionController) ModelInfo(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Model info", c.service.ModelInfo()))
}
