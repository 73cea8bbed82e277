package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tactics_server/core/domain"
	"tactics_server/core/port/out"
	"tactics_server/pkg/httputil"
)

// =============================================================================
// Dify Workflow Provider
// =============================================================================

const (
	difyWorkflowPath = "/v1/workflows/run"
	difyUser         = "valentactics-system"
)

// DifyConfig holds Dify workflow configuration.
type DifyConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// DifyProvider runs a blocking Dify workflow per target.
type DifyProvider struct {
	url    string
	apiKey string
	client *http.Client
}

var _ out.ScoringProvider = (*DifyProvider)(nil)

// NewDifyProvider creates a Dify provider.
func NewDifyProvider(cfg *DifyConfig) (*DifyProvider, error) {
	if cfg == nil || cfg.BaseURL == "" || cfg.APIKey == "" {
		return nil, errors.New("dify: base url and api key are required")
	}
	return &DifyProvider{
		url:    strings.TrimRight(cfg.BaseURL, "/") + difyWorkflowPath,
		apiKey: cfg.APIKey,
		client: httputil.NewOptimizedClient(httputil.ProviderClientConfig(cfg.Timeout)),
	}, nil
}

// Name returns the provider name.
func (p *DifyProvider) Name() string { return "dify" }

type difyRequest struct {
	Inputs       map[string]string `json:"inputs"`
	ResponseMode string            `json:"response_mode"`
	User         string            `json:"user"`
}

type difyResponse struct {
	Data struct {
		Status  string        `json:"status"`
		Error   string        `json:"error"`
		Outputs *remoteResult `json:"outputs"`
	} `json:"data"`
}

// Analyze runs the workflow and maps its outputs.
func (p *DifyProvider) Analyze(ctx context.Context, t *domain.TargetProfile) (*domain.TargetAnalysis, error) {
	req := difyRequest{
		Inputs:       workflowInputs(t),
		ResponseMode: "blocking",
		User:         difyUser,
	}
	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}

	var resp difyResponse
	if err := httputil.PostJSON(ctx, p.client, p.url, headers, req, &resp); err != nil {
		return nil, fmt.Errorf("dify workflow: %w", err)
	}
	if resp.Data.Status != "" && resp.Data.Status != "succeeded" {
		return nil, fmt.Errorf("dify workflow %s: %s", resp.Data.Status, resp.Data.Error)
	}
	if resp.Data.Outputs == nil {
		return nil, errors.New("dify workflow: no outputs")
	}
	return resp.Data.Outputs.toAnalysis(), nil
}
