package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics_server/core/domain"
)

const targetYAML = `name: Sato
relationship: colleague
benefitType: tangible
giftReaction: unknown
relationshipGoal: maintain
emotionalPriority: 3
giriAwareness: unknown
returnTendency: unknown
budget: 300
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.yaml")
	require.NoError(t, os.WriteFile(path, []byte(targetYAML), 0o600))

	out, err := run(t, "analyze", "-f", path, "--seed", "3")
	require.NoError(t, err)

	var res domain.TargetAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 15, res.Scores.GiftFit)
	assert.Equal(t, "Black Thunder courtesy pack", res.Gift.Item)
	assert.Equal(t, domain.SourceLocal, res.Source)
}

func TestAnalyzeCommandRejectsInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "target.yaml")
	bad := strings.Replace(targetYAML, "budget: 300", "budget: 5", 1)
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o600))

	_, err := run(t, "analyze", "-f", path)
	assert.ErrorContains(t, err, "Budget")

	_, err = run(t, "analyze", "-f", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestPlanCommandIsReproducibleWithSeed(t *testing.T) {
	first, err := run(t, "plan", "--demo", "--seed", "42")
	require.NoError(t, err)
	second, err := run(t, "plan", "--demo", "--seed", "42")
	require.NoError(t, err)

	var a, b domain.Plan
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Len(t, a.Targets, 5)
	assert.Equal(t, a.Targets, b.Targets)
	assert.Equal(t, a.Allocations, b.Allocations)
}

func TestPlanCommandFromJSONFile(t *testing.T) {
	req := map[string]any{
		"totalBudget": 3000,
		"targets": []map[string]any{{
			"id": "x", "name": "Sato", "relationship": "friend", "benefitType": "intangible",
			"giftReaction": "unknown", "relationshipGoal": "maintain", "emotionalPriority": 4,
			"giriAwareness": "unknown", "returnTendency": "unknown", "budget": 3000,
		}},
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	out, err := run(t, "plan", "-f", path)
	require.NoError(t, err)

	var plan domain.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, 3000, plan.Allocations["x"])

	_, err = run(t, "plan")
	assert.ErrorContains(t, err, "--demo")
}
