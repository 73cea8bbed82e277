package response

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics_server/pkg/apperr"
)

func render(t *testing.T, h fiber.Handler) (int, Response) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out Response
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestFromErrorKeepsCodeAndDetails(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return FromError(c, apperr.InvalidInput("targets", "duplicate id a").WithDetail("index", 1))
	})

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, apperr.CodeInvalidInput, body.Error.Code)
	assert.EqualValues(t, 1, body.Error.Details["index"])
}

func TestCreated(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return Created(c, map[string]string{"id": "p1"}, &Meta{Total: 1})
	})

	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 1, body.Meta.Total)
}

func TestOKWithMetaOmitsUnsetSeed(t *testing.T) {
	_, body := render(t, func(c *fiber.Ctx) error {
		return OKWithMeta(c, []int{1, 2}, &Meta{Total: 2})
	})

	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.Equal(t, 2, body.Meta.Total)
	assert.Nil(t, body.Meta.Seed)
}
