package http_test

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/toa-ordenes-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/toa-ordenes-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = int64(1)
	testIssuer    = "toa-ordenes-test"
	testExpMin    = 60
)

// buildAdminApp construye una app Fiber mínima con AuthMiddleware + RequireAdmin
// y un handler dummy que devuelve 200 si pasa los middlewares.
func buildAdminApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireAdmin(),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":       true,
				"username": apphttp.GetUsername(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el usuario y roles indicados.
func tokenFor(t *testing.T, username string, roles ...string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, username, roles, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: usuario con rol admin → HTTP 200.
func TestRequireAdmin_RolAdminAccede(t *testing.T) {
	app := buildAdminApp()
	resp := doRequest(t, app, "/admin", tokenFor(t, "carla", "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un usuario con rol admin debe poder acceder a rutas de administración")
}

// Caso 2: el usuario dev accede aunque no tenga rol admin.
func TestRequireAdmin_UsuarioDevAccedeSinRol(t *testing.T) {
	app := buildAdminApp()
	resp := doRequest(t, app, "/admin", tokenFor(t, "dev", "supervisor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el usuario dev salta la verificación de rol")
}

// Caso 3: supervisor común → HTTP 403.
func TestRequireAdmin_SupervisorBloqueado(t *testing.T) {
	app := buildAdminApp()
	resp := doRequest(t, app, "/admin", tokenFor(t, "pedro", "supervisor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 4: sin header Authorization → HTTP 401.
func TestRequireAdmin_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildAdminApp()
	resp := doRequest(t, app, "/admin", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: token malformado → HTTP 401.
func TestRequireAdmin_TokenInvalido_Retorna401(t *testing.T) {
	app := buildAdminApp()
	resp := doRequest(t, app, "/admin", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"username": apphttp.GetUsername(c),
			"roles":    apphttp.GetRoles(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, "carla", "admin", "supervisor"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID   int64    `json:"user_id"`
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, "carla", body.Username)
	assert.Equal(t, []string{"admin", "supervisor"}, body.Roles)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TokenMiddleware — ingesta externa
// ──────────────────────────────────────────────────────────────────────────────

func buildTokenApp(apiToken string) *fiber.App {
	app := fiber.New()
	app.Post("/ingest", apphttp.TokenMiddleware(apiToken), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestTokenMiddleware_TokenCorrecto(t *testing.T) {
	app := buildTokenApp("secreto-ingesta")
	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	req.Header.Set("Token", "secreto-ingesta")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTokenMiddleware_TokenIncorrecto_Retorna401(t *testing.T) {
	app := buildTokenApp("secreto-ingesta")
	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	req.Header.Set("Token", "otro-valor")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTokenApp("secreto-ingesta")
	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenMiddleware_SinConfigurar_Retorna503(t *testing.T) {
	app := buildTokenApp("")
	req := httptest.NewRequest(http.MethodPost, "/ingest", nil)
	req.Header.Set("Token", "lo-que-sea")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests BasicAuthMiddleware — lectura PowerBI
// ──────────────────────────────────────────────────────────────────────────────

func buildBasicApp(user, pass string) *fiber.App {
	app := fiber.New()
	app.Get("/bi", apphttp.BasicAuthMiddleware(user, pass), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestBasicAuth_CredencialesCorrectas(t *testing.T) {
	app := buildBasicApp("powerbi", "clave123")
	resp := doRequest(t, app, "/bi", basicHeader("powerbi", "clave123"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBasicAuth_PasswordIncorrecta_Retorna401(t *testing.T) {
	app := buildBasicApp("powerbi", "clave123")
	resp := doRequest(t, app, "/bi", basicHeader("powerbi", "otra"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")
}

func TestBasicAuth_SinConfigurar_Retorna503(t *testing.T) {
	app := buildBasicApp("", "")
	resp := doRequest(t, app, "/bi", basicHeader("powerbi", "clave123"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestBasicAuth_SinHeader_Retorna401(t *testing.T) {
	app := buildBasicApp("powerbi", "clave123")
	resp := doRequest(t, app, "/bi", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRoles(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, 42, "carla", []string{"supervisor"}, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "carla", claims.Username)
	assert.Equal(t, []string{"supervisor"}, claims.Roles)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "carla", []string{"admin"}, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "carla", []string{"admin"}, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
