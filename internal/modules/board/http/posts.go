package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"board/internal/modules/board/domain"
)

var validate = validator.New()

type createPostReq struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"body" validate:"required,min=1,max=10000"`
}

type postResp struct {
	ID        string `json:"id"`
	AuthorID  string `json:"author_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toPostResp(p *domain.Post) postResp {
	return postResp{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Body:      p.Body,
		CreatedAt: p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func CreatePostHandler(posts domain.PostRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var req createPostReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return validationError(c, err)
		}

		p, err := posts.Create(domain.Post{AuthorID: userID, Title: req.Title, Body: req.Body})
		if err != nil {
			return serverError(c, "Could not create post")
		}
		return c.Status(fiber.StatusCreated).JSON(toPostResp(p))
	}
}

func ListPostsHandler(posts domain.PostRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 20)

		list, total, err := posts.List(page, limit)
		if err != nil {
			return serverError(c, "Could not list posts")
		}
		out := make([]postResp, 0, len(list))
		for i := range list {
			out = append(out, toPostResp(&list[i]))
		}
		return c.JSON(fiber.Map{"posts": out, "total": total, "page": page})
	}
}

func GetPostHandler(posts domain.PostRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := posts.GetByID(c.Params("post_id"))
		if err != nil || p == nil {
			return notFound(c, "Post not found")
		}
		return c.JSON(toPostResp(p))
	}
}

type updatePostReq struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=200"`
	Body  *string `json:"body" validate:"omitempty,min=1,max=10000"`
}

func UpdatePostHandler(posts domain.PostRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)

		var req updatePostReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return validationError(c, err)
		}

		p, err := posts.Update(c.Params("post_id"), userID, req.Title, req.Body)
		if err != nil || p == nil {
			return notFound(c, "Post not found")
		}
		return c.JSON(toPostResp(p))
	}
}

func DeletePostHandler(posts domain.PostRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := posts.Delete(c.Params("post_id"), userID); err != nil {
			return notFound(c, "Post not found")
		}
		return c.JSON(fiber.Map{"message": "Post deleted"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error_code": "INVALID_FIELDS",
		"message":    msg,
	})
}

func validationError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error_code": "VALIDATION_ERROR",
		"message":    err.Error(),
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error_code": "NOT_FOUND",
		"message":    msg,
	})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error_code": "SERVER_ERROR",
		"message":    msg,
	})
}
