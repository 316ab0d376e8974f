package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/decryp7/credit-card-billsplit/internal/logger"
)

// Options configures NewApp.
type Options struct {
	BodyLimit int
	StaticDir string
	Log       zerolog.Logger
}

// NewApp builds the fiber application with middleware and routes.
func NewApp(h *Handler, opts Options) *fiber.App {
	cfg := fiber.Config{
		AppName:               "billsplit",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return writeError(c, status, err.Error())
		},
	}
	if opts.BodyLimit > 0 {
		cfg.BodyLimit = opts.BodyLimit
	}

	app := fiber.New(cfg)
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(RequestLogger(opts.Log))

	h.RegisterRoutes(app)

	if opts.StaticDir != "" {
		app.Static("/", opts.StaticDir, fiber.Static{Index: "index.html"})
	}
	return app
}

// RequestLogger logs every request and puts log into the request context.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.SetUserContext(logger.WithContext(c.UserContext(), log))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("remote_addr", c.IP()).
			Msg("HTTP request")
		return err
	}
}
