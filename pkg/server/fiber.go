package server

import (
	"clubhouse/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewApp builds the Fiber app with the shared middleware stack. The ready
// probe reflects schema initialization: /health answers 503 until the
// migrations have been applied. A nil probe means always ready.
func NewApp(name string, ready func() bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:           name,
		ReduceMemoryUsage: true,
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(cors.New(middleware.CORSConfig()))

	app.Get("/health", func(c *fiber.Ctx) error {
		if ready != nil && !ready() {
			return c.Status(503).JSON(fiber.Map{"status": "starting", "service": name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})

	return app
}
