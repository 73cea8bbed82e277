package http

import (
	"bytes"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics_server/core/domain"
	"tactics_server/core/service/analysis"
	"tactics_server/core/service/scoring"
	"tactics_server/infra/middleware"
	"tactics_server/internal/demo"
	"tactics_server/pkg/metrics"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total int    `json:"total"`
		Seed  *int64 `json:"seed"`
	} `json:"meta"`
}

func newTestApp(t *testing.T, demoSource DemoSource) *fiber.App {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := analysis.NewService(&analysis.ServiceDeps{
		Random:  scoring.NewRandom(11),
		Metrics: metrics.MustNewMetrics(reg),
		Logger:  zerolog.Nop(),
	}, nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(zerolog.Nop()),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
	app.Use(middleware.Recover(zerolog.Nop()))
	app.Use(middleware.RequestID())

	seed := int64(11)
	NewHealthHandler(reg, nil).Register(app)
	NewAnalysisHandler(svc, analysis.NewValidator(), demoSource, &seed).Register(app.Group("/api"))
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func validTarget(name string) map[string]any {
	return map[string]any{
		"name":              name,
		"relationship":      "colleague",
		"benefitType":       "tangible",
		"personality":       []string{},
		"preferences":       []string{"coffee_lover"},
		"recentInterests":   "",
		"giftReaction":      "unknown",
		"recipientActions":  []string{"contacts_me"},
		"recentEpisodes":    "",
		"relationshipGoal":  "maintain",
		"emotionalPriority": 3,
		"giriAwareness":     "unknown",
		"returnTendency":    "unknown",
		"returnValue":       nil,
		"budget":            1000,
		"memo":              "",
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)
	req := httptest.NewRequest(fiber.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, nil)
	status, _ := do(t, app, fiber.MethodPost, "/api/targets/analyze", validTarget("Sato"))
	require.Equal(t, fiber.StatusOK, status)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "tactics_analyses_total")
}

func TestAnalyzeEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	status, env := do(t, app, fiber.MethodPost, "/api/targets/analyze", validTarget("Sato"))
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, env.Success)
	require.NotNil(t, env.Meta)
	require.NotNil(t, env.Meta.Seed)
	assert.Equal(t, int64(11), *env.Meta.Seed)

	var res domain.TargetAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, domain.SourceLocal, res.Source)
	assert.LessOrEqual(t, res.Gift.Price, 1000)
	assert.NotEmpty(t, res.Message)
}

func TestAnalyzeEndpointRejectsInvalidInput(t *testing.T) {
	app := newTestApp(t, nil)

	bad := validTarget("Sato")
	bad["budget"] = 10
	bad["emotionalPriority"] = 9
	status, env := do(t, app, fiber.MethodPost, "/api/targets/analyze", bad)
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Message, "Budget")

	status, env = do(t, app, fiber.MethodPost, "/api/targets/analyze", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestAnalyzeBulkEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	targets := []map[string]any{validTarget("A"), validTarget("B"), validTarget("C")}
	targets[1]["budget"] = 2000
	status, env := do(t, app, fiber.MethodPost, "/api/targets/analyze-bulk", map[string]any{"targets": targets})
	require.Equal(t, fiber.StatusOK, status)

	var res []domain.TargetAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res, 3)
	assert.Equal(t, 2000, res[1].AllocatedBudget)
	assert.Equal(t, 3, env.Meta.Total)

	tooMany := make([]map[string]any, 21)
	for i := range tooMany {
		tooMany[i] = validTarget("T")
	}
	status, env = do(t, app, fiber.MethodPost, "/api/targets/analyze-bulk", map[string]any{"targets": tooMany})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestPlanEndpoint(t *testing.T) {
	app := newTestApp(t, nil)

	a, b := validTarget("A"), validTarget("B")
	a["id"], b["id"] = "a", "b"
	b["relationship"], b["relationshipGoal"], b["emotionalPriority"] = "partner", "deepen", 5

	status, env := do(t, app, fiber.MethodPost, "/api/plans", map[string]any{
		"targets":     []map[string]any{a, b},
		"totalBudget": 8000,
	})
	require.Equal(t, fiber.StatusCreated, status)

	var plan domain.Plan
	require.NoError(t, json.Unmarshal(env.Data, &plan))
	assert.NotEmpty(t, plan.ID)
	assert.Len(t, plan.Targets, 2)
	assert.Contains(t, plan.Allocations, "a")
	assert.Contains(t, plan.Allocations, "b")
	assert.NotEmpty(t, plan.Timeline)

	status, env = do(t, app, fiber.MethodPost, "/api/plans", map[string]any{
		"targets":     []map[string]any{a},
		"totalBudget": 50,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Error.Message, "TotalBudget")

	b["id"] = "a"
	status, env = do(t, app, fiber.MethodPost, "/api/plans", map[string]any{
		"targets":     []map[string]any{a, b},
		"totalBudget": 8000,
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestDemoEndpoint(t *testing.T) {
	app := newTestApp(t, demo.PlanRequest)
	status, env := do(t, app, fiber.MethodGet, "/api/demo", nil)
	require.Equal(t, fiber.StatusOK, status)

	var req domain.PlanRequest
	require.NoError(t, json.Unmarshal(env.Data, &req))
	assert.Len(t, req.Targets, 5)

	status, env = do(t, app, fiber.MethodPost, "/api/plans", req)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, env.Success)

	failing := newTestApp(t, func() (*domain.PlanRequest, error) { return nil, errors.New("gone") })
	status, env = do(t, failing, fiber.MethodGet, "/api/demo", nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)

	missing := newTestApp(t, nil)
	status, _ = do(t, missing, fiber.MethodGet, "/api/demo", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, nil)
	status, env := do(t, app, fiber.MethodGet, "/api/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
