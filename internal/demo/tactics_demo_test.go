package demo

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRequestIsValid(t *testing.T) {
	req, err := PlanRequest()
	require.NoError(t, err)

	assert.Equal(t, 15000, req.TotalBudget)
	require.Len(t, req.Targets, 5)
	require.NotNil(t, req.Targets[0].ReturnValue)
	assert.Equal(t, 6000, *req.Targets[0].ReturnValue)
	assert.Nil(t, req.Targets[2].ReturnValue)

	v := validator.New(validator.WithRequiredStructEnabled())
	assert.NoError(t, v.Struct(req))

	again, err := PlanRequest()
	require.NoError(t, err)
	again.Targets[0].Name = "changed"
	assert.Equal(t, "Haruka", req.Targets[0].Name)
}
