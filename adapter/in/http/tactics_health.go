package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProviderStatus reports remote provider health for /ready.
type ProviderStatus interface {
	Name() string
	IsOpen() bool
}

type HealthHandler struct {
	gatherer prometheus.Gatherer
	provider ProviderStatus
}

// NewHealthHandler creates the health handler. Both arguments are optional.
func NewHealthHandler(gatherer prometheus.Gatherer, provider ProviderStatus) *HealthHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &HealthHandler{gatherer: gatherer, provider: provider}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready always succeeds: local scoring needs no backing service. An open
// breaker is reported so operators can see remote scoring is degraded.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := map[string]string{"scoring": "local"}
	if h.provider != nil {
		state := "healthy"
		if h.provider.IsOpen() {
			state = "circuit open, using local scoring"
		}
		checks[h.provider.Name()] = state
	}

	return c.JSON(fiber.Map{
		"status":    "ready",
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
