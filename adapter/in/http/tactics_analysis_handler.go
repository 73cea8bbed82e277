package http

import (
	"github.com/gofiber/fiber/v2"

	"tactics_server/core/domain"
	"tactics_server/core/port/in"
	"tactics_server/pkg/apperr"
	"tactics_server/pkg/response"
)

// RequestValidator checks decoded request bodies.
type RequestValidator interface {
	Profile(t *domain.TargetProfile) error
	Struct(s any) error
}

// DemoSource supplies the sample plan request.
type DemoSource func() (*domain.PlanRequest, error)

// AnalysisHandler serves single-target analysis and batch plans.
type AnalysisHandler struct {
	service   in.AnalysisService
	validator RequestValidator
	demo      DemoSource
	seed      *int64
}

// NewAnalysisHandler creates the handler. seed is echoed in response
// metadata when the process runs with a fixed seed.
func NewAnalysisHandler(service in.AnalysisService, validator RequestValidator, demo DemoSource, seed *int64) *AnalysisHandler {
	return &AnalysisHandler{service: service, validator: validator, demo: demo, seed: seed}
}

// Register registers analysis routes.
func (h *AnalysisHandler) Register(router fiber.Router) {
	targets := router.Group("/targets")
	targets.Post("/analyze", h.Analyze)
	targets.Post("/analyze-bulk", h.AnalyzeBulk)

	router.Post("/plans", h.Plan)
	router.Get("/demo", h.Demo)
}

// Analyze handles POST /api/targets/analyze.
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	var target domain.TargetProfile
	if err := c.BodyParser(&target); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validator.Profile(&target); err != nil {
		return err
	}

	res, err := h.service.Analyze(c.UserContext(), &target)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, res, &response.Meta{Seed: h.seed})
}

// AnalyzeBulk handles POST /api/targets/analyze-bulk.
func (h *AnalysisHandler) AnalyzeBulk(c *fiber.Ctx) error {
	var req domain.BulkAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	results, err := h.service.AnalyzeAll(c.UserContext(), req.Targets)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, results, &response.Meta{Total: len(results), Seed: h.seed})
}

// Plan handles POST /api/plans.
func (h *AnalysisHandler) Plan(c *fiber.Ctx) error {
	var req domain.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	plan, err := h.service.Plan(c.UserContext(), req.Targets, req.TotalBudget)
	if err != nil {
		return err
	}
	return response.Created(c, plan, &response.Meta{Total: len(plan.Targets), Seed: h.seed})
}

// Demo handles GET /api/demo: the sample request, for front ends to prefill.
func (h *AnalysisHandler) Demo(c *fiber.Ctx) error {
	if h.demo == nil {
		return apperr.NotFound("demo data")
	}
	req, err := h.demo()
	if err != nil {
		return apperr.Internal("demo data unavailable", err)
	}
	return response.OK(c, req)
}
