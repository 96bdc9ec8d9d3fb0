package controller

import (
	"io"
	"strconv"

	"ai-copilot-be/internal/constant"
	"ai-copilot-be/internal/dto"
	"ai-copilot-be/internal/pkg/serverutils"
	"ai-copilot-be/internal/service"
	"ai-copilot-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
)

// maxAttachmentChars caps the extracted attachment excerpt stored as a system
// message.
const maxAttachmentChars = 50_000

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ChatForm(ctx *fiber.Ctx) error
	NewSession(ctx *fiber.Ctx) error
	LoadSession(ctx *fiber.Ctx) error
	CloseSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1")
	h.Post("/chat", c.Chat)
	h.Post("/chat/form", c.ChatForm)
	h.Post("/session/new", c.NewSession)
	h.Post("/session/load", c.LoadSession)
	h.Post("/session/close", c.CloseSession)
	h.Get("/sessions/:user_id", c.ListSessions)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ProcessChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat processed", res))
}

// ChatForm accepts a multipart chat turn with an optional file attachment.
// Extracted attachment text enters the session as its own system message, so
// the context window policies treat it as context rather than user dialog.
func (c *chatController) ChatForm(ctx *fiber.Ctx) error {
	req := dto.ChatRequest{
		Text:      ctx.FormValue("text"),
		SessionId: ctx.FormValue("session_id"),
		UserId:    ctx.FormValue("user_id"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if fileHeader, err := ctx.FormFile("file"); err == nil && fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to open uploaded file")
		}
		defer f.Close()

		raw, err := io.ReadAll(f)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Failed to read uploaded file")
		}

		content, err := extract.TextFromBytes(raw, fileHeader.Filename)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		if content != "" {
			c.service.StoreMessage(ctx.Context(), req.SessionId, req.UserId,
				constant.ChatMessageRoleSystem, attachmentMessage(fileHeader.Filename, content))
		}
	}

	res, err := c.service.ProcessChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat processed", res))
}

// attachmentMessage formats extracted file text as a marked system message,
// capped so one large upload cannot dominate the session window.
func attachmentMessage(filename, content string) string {
	if len(content) > maxAttachmentChars {
		content = content[:maxAttachmentChars]
	}
	return "[Attachment: " + filename + "]\n" + content
}

func (c *chatController) NewSession(ctx *fiber.Ctx) error {
	var req dto.NewSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.NewSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("New session created", res))
}

func (c *chatController) LoadSession(ctx *fiber.Ctx) error {
	var req dto.LoadChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.LoadSessionToCache(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session loaded", res))
}

func (c *chatController) CloseSession(ctx *fiber.Ctx) error {
	var req dto.CloseSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CloseSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session closed", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId := ctx.Params("user_id")
	if userId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}

	limit, _ := strconv.Atoi(ctx.Query("limit", "30"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	res, err := c.service.ListUserSessions(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Sessions listed", res))
}
