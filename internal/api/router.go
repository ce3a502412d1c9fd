package api

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"veye-site/docs"
	"veye-site/internal/api/handlers"
	"veye-site/pkg/auth"
	"veye-site/pkg/config"
	"veye-site/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Chat      *handlers.ChatHandler
	Knowledge *handlers.KnowledgeHandler
	Contact   *handlers.ContactHandler
	Auth      *handlers.AuthHandler
	Leads     *handlers.LeadHandler
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, cfg *config.Config, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Public site API
	public := app.Group("/api")
	openCORS := middleware.OpenCORS()

	public.All("/chat", openCORS, perMinute(cfg.RateLimit.ChatPerMinute, h.Chat.RateLimited), h.Chat.Chat)
	public.All("/contact", openCORS, perMinute(cfg.RateLimit.ContactPerMinute, func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many submissions, please try again shortly",
		})
	}), h.Contact.Submit)
	public.Get("/knowledge-health", openCORS, h.Knowledge.Health)

	// Back office
	admin := app.Group("/api/v1/admin", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	adminAuth := admin.Group("/auth")
	adminAuth.Post("/login", h.Auth.Login)
	adminAuth.Post("/refresh", h.Auth.RefreshToken)

	admin.Get("/leads", middleware.AdminAuth(jwtManager, appLogger), h.Leads.ListLeads)

	// Single-page site
	webDistPath := findWebDistPath(cfg.Server.StaticDir, appLogger)
	if webDistPath != "" {
		appLogger.Info("Serving static files", zap.String("path", webDistPath))
		app.Static("/", webDistPath)

		indexPath := filepath.Join(webDistPath, "index.html")
		app.Get("/*", func(c *fiber.Ctx) error {
			if strings.HasPrefix(c.Path(), "/api/") {
				return fiber.ErrNotFound
			}
			return c.SendFile(indexPath)
		})
	} else {
		appLogger.Warn("Web dist directory not found, static files will not be served")
	}

	return app
}

// perMinute limits requests per client IP. OPTIONS preflights are never
// counted. A non-positive max disables the limit.
func perMinute(max int, limitReached fiber.Handler) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   time.Minute,
		LimitReached: limitReached,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
	})
}

// findWebDistPath finds the built site, preferring the configured directory.
func findWebDistPath(configured string, logger *zap.Logger) string {
	paths := []string{
		"./web/dist",
		"../web/dist",
		"../../web/dist",
	}
	if configured != "" {
		paths = append([]string{configured}, paths...)
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			return path
		}
		logger.Debug("Tried path", zap.String("path", path))
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
