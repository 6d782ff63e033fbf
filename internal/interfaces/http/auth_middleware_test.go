package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/controle-estoque/internal/application/access"
	"github.com/jhoicas/controle-estoque/internal/application/dto"
	apphttp "github.com/jhoicas/controle-estoque/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/controle-estoque/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "controle-estoque-test"
	testExpMin    = 60
)

// buildGateApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireOperation para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildGateApp(t *testing.T, op access.OperationID) *fiber.App {
	t.Helper()
	gate, err := access.NewGate(access.DefaultRules())
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireOperation(gate, op),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user": apphttp.GetUsername(c),
				"role": string(apphttp.GetRole(c)),
			})
		},
	)
	return app
}

func bearer(t *testing.T, username, role string, expMin int) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, username, role, testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func getProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := buildGateApp(t, access.OpDashboard)

	cases := map[string]string{
		"sin header":     "",
		"sin esquema":    "abc.def.ghi",
		"esquema basic":  "Basic dXNlcjpwYXNz",
		"token vacío":    "Bearer   ",
		"token basura":   "Bearer abc.def.ghi",
		"token expirado": bearer(t, "ana", "user", -1),
		"rol inválido":   bearer(t, "ana", "root", testExpMin),
		"sin usuario":    bearer(t, "", "user", testExpMin),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			resp := getProtected(t, app, header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, dto.CodeSessionExpired, errorCode(t, resp))
		})
	}
}

func TestAuthMiddleware_FirmaDeOtroSecreto(t *testing.T) {
	app := buildGateApp(t, access.OpDashboard)
	tok, _, err := pkgjwt.Generate("otro-secreto", "ana", "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := getProtected(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CargaLocals(t *testing.T) {
	app := buildGateApp(t, access.OpDashboard)
	resp := getProtected(t, app, bearer(t, "ana", "user", testExpMin))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ana", body["user"])
	assert.Equal(t, "user", body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireOperation
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireOperation_PorRol(t *testing.T) {
	cases := []struct {
		op     access.OperationID
		role   string
		status int
	}{
		{access.OpDashboard, "user", http.StatusOK},
		{access.OpProductsView, "user", http.StatusOK},
		{access.OpStockIn, "user", http.StatusForbidden},
		{access.OpStockIn, "staff", http.StatusOK},
		{access.OpSuppliersCreate, "staff", http.StatusOK},
		{access.OpUsersManage, "staff", http.StatusForbidden},
		{access.OpUsersManage, "admin", http.StatusOK},
		{access.OpStockOut, "admin", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(string(tc.op)+"/"+tc.role, func(t *testing.T) {
			app := buildGateApp(t, tc.op)
			resp := getProtected(t, app, bearer(t, "x", tc.role, testExpMin))
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == http.StatusForbidden {
				assert.Equal(t, dto.CodeForbidden, errorCode(t, resp))
			}
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// LoginRateLimit
// ──────────────────────────────────────────────────────────────────────────────

func TestLoginRateLimit(t *testing.T) {
	app := fiber.New()
	app.Post("/login", apphttp.LoginRateLimit(0.001, 2), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, dto.CodeTooManyRequests, errorCode(t, resp))
}

func TestLoginRateLimit_Deshabilitado(t *testing.T) {
	app := fiber.New()
	app.Post("/login", apphttp.LoginRateLimit(0, 0), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	for i := 0; i < 20; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
}
