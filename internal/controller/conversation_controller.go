package controller

import (
	"empower-commerce-be/internal/dto"
	"empower-commerce-be/internal/pkg/serverutils"
	"empower-commerce-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Message(ctx *fiber.Ctx) error
	Snapshot(ctx *fiber.Ctx) error
	Goals(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
}

func NewConversationController(conversationService service.IConversationService) IConversationController {
	return &conversationController{
		conversationService: conversationService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Post("/start", c.Start)
	h.Post("/:session_id/message", c.Message)
	h.Get("/:session_id", c.Snapshot)
	h.Post("/:session_id/goals", c.Goals)
}

// localUserID prefers the authenticated identity; anonymous callers may
// still pass an explicit user_id in the body.
func localUserID(ctx *fiber.Ctx, requested string) string {
	if requested != "" {
		return requested
	}
	if userId, ok := ctx.Locals("user_id").(string); ok {
		return userId
	}
	return ""
}

func (c *conversationController) Start(ctx *fiber.Ctx) error {
	var req dto.ConversationStartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	req.UserID = localUserID(ctx, req.UserID)
	res, err := c.conversationService.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start conversation", res))
}

func (c *conversationController) Message(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session_id")

	var req dto.MessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	req.UserID = localUserID(ctx, req.UserID)
	res, err := c.conversationService.ProcessMessage(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process message", res))
}

func (c *conversationController) Snapshot(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session_id")
	userId := localUserID(ctx, ctx.Query("user_id"))

	res, err := c.conversationService.GetSnapshot(ctx.Context(), sessionId, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", res))
}

func (c *conversationController) Goals(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("session_id")

	var req dto.ClarifiedGoalsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	req.UserID = localUserID(ctx, req.UserID)
	res, err := c.conversationService.IngestGoals(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record goals", res))
}
