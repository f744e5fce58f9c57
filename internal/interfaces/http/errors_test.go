package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/domain"
)

func TestStatusFor_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrScope, http.StatusForbidden, "SCOPE"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrIllegalTransition, http.StatusConflict, "ILLEGAL_TRANSITION"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.Invalid("kg negativo"), http.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("order repo: %w", domain.ErrConflict), http.StatusConflict, "CONFLICT"},
		{errors.New("conexión perdida"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, code := statusFor(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, code, tc.err.Error())
	}
}

func TestRespondError_OcultaDetalleInterno(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, errors.New("pq: password authentication failed"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "password")
}

func TestPageFrom_AplicaTopes(t *testing.T) {
	app := fiber.New()
	app.Get("/p", func(c *fiber.Ctx) error {
		return c.JSON(pageFrom(c))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/p?limit=500&offset=-3", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var page dto.PageRequest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 0, page.Offset)
}
