package controller

import (
	"errors"
	"time"

	"realestate-chatbot-be/internal/dto"
	"realestate-chatbot-be/internal/pkg/serverutils"
	"realestate-chatbot-be/internal/service"
	"realestate-chatbot-be/pkg/rag/access"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
	Respond(ctx *fiber.Ctx) error
	GetConversation(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service       service.IChatbotService
	ratePerMinute int
}

// NewChatbotController builds the chatbot endpoints. ratePerMinute <= 0
// disables the respond rate limit.
func NewChatbotController(service service.IChatbotService, ratePerMinute int) IChatbotController {
	return &chatbotController{service: service, ratePerMinute: ratePerMinute}
}

func (c *chatbotController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	h := api.Group("/chatbot/v1")

	// Public, called by the embedded widget
	if c.ratePerMinute > 0 {
		h.Post("/respond", limiter.New(limiter.Config{
			Max:        c.ratePerMinute,
			Expiration: time.Minute,
			LimitReached: func(ctx *fiber.Ctx) error {
				return ctx.Status(fiber.StatusTooManyRequests).
					JSON(serverutils.ErrorResponse(fiber.StatusTooManyRequests, "Too many requests"))
			},
		}), c.Respond)
	} else {
		h.Post("/respond", c.Respond)
	}

	// Dashboard
	h.Get("/conversations/:id", jwtMiddleware, c.GetConversation)
}

// Respond answers one widget turn. The body is returned flat, not wrapped in
// the success envelope, because the widget reads it as is.
func (c *chatbotController) Respond(ctx *fiber.Ctx) error {
	var req dto.RespondRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Respond(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, access.ErrFeatureDisabled) {
			return fiber.NewError(fiber.StatusForbidden, "Chatbot is not available on your plan")
		}
		return err
	}

	return ctx.JSON(res)
}

func (c *chatbotController) GetConversation(ctx *fiber.Ctx) error {
	accountIdStr, _ := ctx.Locals(serverutils.LocalAccountID).(string)
	accountId, err := uuid.Parse(accountIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid account")
	}

	res, err := c.service.GetConversation(ctx.UserContext(), accountId, ctx.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get conversation", res))
}
