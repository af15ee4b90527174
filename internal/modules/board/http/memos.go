package http

import (
	"github.com/gofiber/fiber/v2"

	"board/internal/modules/board/domain"
)

type memoReq struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

type memoResp struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toMemoResp(m *domain.Memo) memoResp {
	return memoResp{
		ID:        m.ID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: m.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func CreateMemoHandler(memos domain.MemoRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var req memoReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return validationError(c, err)
		}

		m, err := memos.Create(domain.Memo{UserID: userID, Body: req.Body})
		if err != nil {
			return serverError(c, "Could not create memo")
		}
		return c.Status(fiber.StatusCreated).JSON(toMemoResp(m))
	}
}

func ListMemosHandler(memos domain.MemoRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		list, err := memos.ListByUser(userID)
		if err != nil {
			return serverError(c, "Could not list memos")
		}
		out := make([]memoResp, 0, len(list))
		for i := range list {
			out = append(out, toMemoResp(&list[i]))
		}
		return c.JSON(fiber.Map{"memos": out})
	}
}

func UpdateMemoHandler(memos domain.MemoRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var req memoReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return validationError(c, err)
		}

		m, err := memos.Update(c.Params("memo_id"), userID, req.Body)
		if err != nil || m == nil {
			return notFound(c, "Memo not found")
		}
		return c.JSON(toMemoResp(m))
	}
}

func DeleteMemoHandler(memos domain.MemoRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := memos.Delete(c.Params("memo_id"), userID); err != nil {
			return notFound(c, "Memo not found")
		}
		return c.JSON(fiber.Map{"message": "Memo deleted"})
	}
}
