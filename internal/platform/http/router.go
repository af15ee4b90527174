package http

import "github.com/gofiber/fiber/v2"

// Module is implemented by feature modules; each one registers its own routes
// under the versioned API prefix.
type Module interface {
	Register(r fiber.Router)
}
