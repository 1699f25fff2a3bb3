package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/anonto42/curious/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&models.CuriousRequest{Prompt: "how do volcanoes work?"}))

	err := v.Validate(&models.CuriousRequest{Prompt: "hi"})
	require.Error(t, err)
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.Contains(t, he.Message, "Prompt")
}
