package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"board/internal/modules/board/domain"
	"board/internal/modules/board/infra"
	pg "board/internal/modules/board/infra/pg"
	plathttp "board/internal/platform/http"
)

// Module wires up the community-board CRUD surface. Everything here requires
// an authenticated user.
type Module struct {
	postRepo    domain.PostRepo
	commentRepo domain.CommentRepo
	memoRepo    domain.MemoRepo
	messageRepo domain.MessageRepo
	pushRepo    domain.PushTokenRepo
	jwtSecret   []byte
}

// NewModule builds the board module on in-memory repos. Dev and tests.
func NewModule(jwtSecret string) *Module {
	return &Module{
		postRepo:    infra.NewMemPostRepo(),
		commentRepo: infra.NewMemCommentRepo(),
		memoRepo:    infra.NewMemMemoRepo(),
		messageRepo: infra.NewMemMessageRepo(),
		pushRepo:    infra.NewMemPushTokenRepo(),
		jwtSecret:   []byte(jwtSecret),
	}
}

// NewModulePG builds the postgres-backed board module.
func NewModulePG(db *pgxpool.Pool, jwtSecret string) *Module {
	return &Module{
		postRepo:    pg.NewPostRepo(db),
		commentRepo: pg.NewCommentRepo(db),
		memoRepo:    pg.NewMemoRepo(db),
		messageRepo: pg.NewMessageRepo(db),
		pushRepo:    pg.NewPushTokenRepo(db),
		jwtSecret:   []byte(jwtSecret),
	}
}

func (m *Module) Register(r fiber.Router) {
	g := r.Group("", plathttp.JWTAuth(m.jwtSecret))

	g.Post("/posts", CreatePostHandler(m.postRepo))
	g.Get("/posts", ListPostsHandler(m.postRepo))
	g.Get("/posts/:post_id", GetPostHandler(m.postRepo))
	g.Patch("/posts/:post_id", UpdatePostHandler(m.postRepo))
	g.Delete("/posts/:post_id", DeletePostHandler(m.postRepo))

	g.Post("/posts/:post_id/comments", CreateCommentHandler(m.postRepo, m.commentRepo))
	g.Get("/posts/:post_id/comments", ListCommentsHandler(m.commentRepo))
	g.Delete("/comments/:comment_id", DeleteCommentHandler(m.commentRepo))

	g.Post("/memos", CreateMemoHandler(m.memoRepo))
	g.Get("/memos", ListMemosHandler(m.memoRepo))
	g.Patch("/memos/:memo_id", UpdateMemoHandler(m.memoRepo))
	g.Delete("/memos/:memo_id", DeleteMemoHandler(m.memoRepo))

	g.Post("/messages", SendMessageHandler(m.messageRepo))
	g.Get("/messages/:peer_id", ListConversationHandler(m.messageRepo))
	g.Post("/messages/:message_id/read", MarkMessageReadHandler(m.messageRepo))

	g.Post("/push-tokens", RegisterPushTokenHandler(m.pushRepo))
	g.Delete("/push-tokens/:token", DeletePushTokenHandler(m.pushRepo))
}
