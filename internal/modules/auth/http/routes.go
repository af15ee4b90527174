package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"board/internal/modules/auth/challenge"
	"board/internal/modules/auth/domain"
	"board/internal/modules/auth/infra"
	pg "board/internal/modules/auth/infra/pg"
	"board/internal/modules/auth/service"
	"board/internal/platform/config"
	plathttp "board/internal/platform/http"
	"board/internal/platform/notify"
	"board/internal/platform/security"
)

// Module wires up dependencies for the auth HTTP module.
type Module struct {
	userRepo    domain.UserRepo
	sessionRepo domain.SessionRepo
	signup      *service.Signup
	jwtMgr      *security.JWTManager
	jwtSecret   []byte
}

// NewModule builds an auth module on in-memory repos. Dev and tests.
func NewModule(gateway *notify.Gateway, verify config.Verify) *Module {
	return newModule(infra.NewMemUserRepo(), infra.NewMemSessionRepo(), gateway, "super-secret", 15*time.Minute, verify)
}

// NewModulePG builds the postgres-backed auth module.
func NewModulePG(db *pgxpool.Pool, gateway *notify.Gateway, jwtSecret string, accessTTL time.Duration, verify config.Verify) *Module {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	return newModule(pg.NewUserRepo(db), pg.NewSessionRepo(db), gateway, jwtSecret, accessTTL, verify)
}

func newModule(users domain.UserRepo, sessions domain.SessionRepo, gateway *notify.Gateway,
	jwtSecret string, accessTTL time.Duration, verify config.Verify) *Module {

	jwtMgr := security.NewJWTManager(jwtSecret, accessTTL)
	registry := challenge.NewRegistry(verify.CodeTTL, verify.ResendCooldown, verify.MaxAttempts)
	signup := service.NewSignup(users, sessions, registry, gateway, jwtMgr, service.Options{
		RequireVerification: verify.Required,
		EchoCodes:           verify.EchoCodes,
	})
	return &Module{
		userRepo:    users,
		sessionRepo: sessions,
		signup:      signup,
		jwtMgr:      jwtMgr,
		jwtSecret:   []byte(jwtSecret),
	}
}

func (m *Module) Register(r fiber.Router) {
	// -------- public --------
	r.Post("/sign-up", SignUpHandler(m.signup))
	r.Post("/sign-up/verify", SignUpVerifyHandler(m.signup))
	r.Post("/sign-up/resend", SignUpResendHandler(m.signup))
	r.Post("/sign-in", SignInHandler(m.userRepo, m.sessionRepo, m.jwtMgr))
	r.Post("/refresh", RefreshHandler(m.sessionRepo, m.userRepo, m.jwtMgr))

	// -------- protected --------
	protected := r.Group("", plathttp.JWTAuth(m.jwtSecret))
	protected.Get("/user", GetProfileHandler(m.userRepo))
	protected.Patch("/user", UpdateProfileHandler(m.userRepo))
	protected.Delete("/user", DeleteUserHandler(m.userRepo, m.sessionRepo))
}
