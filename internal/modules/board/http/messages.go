package http

import (
	"github.com/gofiber/fiber/v2"

	"board/internal/modules/board/domain"
)

type sendMessageReq struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid4"`
	Body        string `json:"body" validate:"required,min=1,max=5000"`
}

type messageResp struct {
	ID          string  `json:"id"`
	SenderID    string  `json:"sender_id"`
	RecipientID string  `json:"recipient_id"`
	Body        string  `json:"body"`
	CreatedAt   string  `json:"created_at"`
	ReadAt      *string `json:"read_at,omitempty"`
}

func toMessageResp(m *domain.Message) messageResp {
	out := messageResp{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		CreatedAt:   m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if m.ReadAt != nil {
		s := m.ReadAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		out.ReadAt = &s
	}
	return out
}

func SendMessageHandler(messages domain.MessageRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var req sendMessageReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return validationError(c, err)
		}

		m, err := messages.Create(domain.Message{
			SenderID:    userID,
			RecipientID: req.RecipientID,
			Body:        req.Body,
		})
		if err != nil {
			return serverError(c, "Could not send message")
		}
		return c.Status(fiber.StatusCreated).JSON(toMessageResp(m))
	}
}

func ListConversationHandler(messages domain.MessageRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 50)

		list, total, err := messages.ListConversation(userID, c.Params("peer_id"), page, limit)
		if err != nil {
			return serverError(c, "Could not list messages")
		}
		out := make([]messageResp, 0, len(list))
		for i := range list {
			out = append(out, toMessageResp(&list[i]))
		}
		return c.JSON(fiber.Map{"messages": out, "total": total, "page": page})
	}
}

func MarkMessageReadHandler(messages domain.MessageRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := messages.MarkRead(c.Params("message_id"), userID); err != nil {
			return notFound(c, "Message not found")
		}
		return c.JSON(fiber.Map{"message": "Marked read"})
	}
}
