// Package demo ships a sample plan request.
package demo

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"tactics_server/core/domain"
)

//go:embed demo.yaml
var demoYAML []byte

// PlanRequest returns a fresh copy of the sample request.
func PlanRequest() (*domain.PlanRequest, error) {
	var req domain.PlanRequest
	if err := yaml.Unmarshal(demoYAML, &req); err != nil {
		return nil, fmt.Errorf("parse demo data: %w", err)
	}
	return &req, nil
}
