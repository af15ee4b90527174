package http

import (
	"github.com/gofiber/fiber/v2"

	"board/internal/modules/board/domain"
)

type createCommentReq struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type commentResp struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	AuthorID  string `json:"author_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

func toCommentResp(cm *domain.Comment) commentResp {
	return commentResp{
		ID:        cm.ID,
		PostID:    cm.PostID,
		AuthorID:  cm.AuthorID,
		Body:      cm.Body,
		CreatedAt: cm.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func CreateCommentHandler(posts domain.PostRepo, comments domain.CommentRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		postID := c.Params("post_id")

		var req createCommentReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body")
		}
		if err := validate.Struct(req); err != nil {
			return validationError(c, err)
		}
		if p, err := posts.GetByID(postID); err != nil || p == nil {
			return notFound(c, "Post not found")
		}

		cm, err := comments.Create(domain.Comment{PostID: postID, AuthorID: userID, Body: req.Body})
		if err != nil {
			return serverError(c, "Could not create comment")
		}
		return c.Status(fiber.StatusCreated).JSON(toCommentResp(cm))
	}
}

func ListCommentsHandler(comments domain.CommentRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := comments.ListByPost(c.Params("post_id"))
		if err != nil {
			return serverError(c, "Could not list comments")
		}
		out := make([]commentResp, 0, len(list))
		for i := range list {
			out = append(out, toCommentResp(&list[i]))
		}
		return c.JSON(fiber.Map{"comments": out})
	}
}

func DeleteCommentHandler(comments domain.CommentRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := comments.Delete(c.Params("comment_id"), userID); err != nil {
			return notFound(c, "Comment not found")
		}
		return c.JSON(fiber.Map{"message": "Comment deleted"})
	}
}
