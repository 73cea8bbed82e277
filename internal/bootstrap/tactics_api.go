package bootstrap

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"tactics_server/adapter/in/http"
	"tactics_server/infra/middleware"
	"tactics_server/internal/demo"
	"tactics_server/pkg/response"
)

// analyzeRateLimit caps analysis calls per client IP per minute. Remote
// providers bill per call.
const analyzeRateLimit = 60

// NewAPI builds the fiber app on top of deps.
func NewAPI(deps *Dependencies) *fiber.App {
	cfg := deps.Config
	log := deps.Logger

	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(log),
		DisableStartupMessage: cfg.IsProduction(),
		ReadTimeout:           cfg.ProviderTimeout() + 10*time.Second,
		WriteTimeout:          cfg.ProviderTimeout() + 10*time.Second,

		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,

		BodyLimit: 1 * 1024 * 1024,
	})

	app.Use(middleware.Recover(log))
	app.Use(middleware.RequestID())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.RequestLogger(log))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	// Credentials are never sent, so "*" is allowed outside production.
	// Production without configured origins gets no CORS headers at all.
	allowOrigins := strings.Join(cfg.AllowedOrigins, ",")
	if allowOrigins == "" && !cfg.IsProduction() {
		allowOrigins = "*"
	}
	if allowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: allowOrigins,
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
		}))
	}

	var breaker http.ProviderStatus
	if s, ok := deps.Provider.(http.ProviderStatus); ok {
		breaker = s
	}
	http.NewHealthHandler(deps.Registry, breaker).Register(app)

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        analyzeRateLimit,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodGet
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
		},
	}))

	var seed *int64
	if cfg.RandomSeed != nil {
		seed = &deps.Seed
	}
	http.NewAnalysisHandler(deps.Service, deps.Validator, demo.PlanRequest, seed).Register(api)

	return app
}
