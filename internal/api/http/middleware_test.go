package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/observability"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

func newGuardedApp(tm *auth.TokenManager) *fiber.App {
	app := fiber.New()
	app.Use(errorHandlingMiddleware(zap.NewNop(), observability.NewMetrics()))
	app.Use(auth.NewAuthenticator(tm).Handle)

	echoPrincipal := func(c *fiber.Ctx) error {
		principal, _ := auth.PrincipalFromContext(c)
		return c.JSON(fiber.Map{"username": principal.Username, "role": principal.Role})
	}

	app.Get("/api/listings", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"public": true})
	})
	app.Get("/api/messages", auth.RequireRole(domain.RoleUser, domain.RoleAdmin), echoPrincipal)
	app.Get("/api/admin/reports", auth.RequireRole(domain.RoleAdmin), echoPrincipal)
	app.Get("/account", auth.RequireAuthenticated(), echoPrincipal)
	return app
}

func bearerRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Error.Code
}

func TestPublicRouteIgnoresMissingToken(t *testing.T) {
	tm := auth.NewTokenManager("guard-secret", 15*time.Minute, time.Hour)
	app := newGuardedApp(tm)

	resp, err := app.Test(bearerRequest(fiber.MethodGet, "/api/listings", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedRouteAcceptsValidToken(t *testing.T) {
	tm := auth.NewTokenManager("guard-secret", 15*time.Minute, time.Hour)
	app := newGuardedApp(tm)

	token, _, err := tm.GenerateAccessToken(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	resp, err := app.Test(bearerRequest(fiber.MethodGet, "/api/messages", token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "alice")
}

func TestProtectedRouteRejectsMissingToken(t *testing.T) {
	tm := auth.NewTokenManager("guard-secret", 15*time.Minute, time.Hour)
	app := newGuardedApp(tm)

	resp, err := app.Test(bearerRequest(fiber.MethodGet, "/api/messages", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestProtectedRouteRejectsTamperedToken(t *testing.T) {
	tm := auth.NewTokenManager("guard-secret", 15*time.Minute, time.Hour)
	app := newGuardedApp(tm)

	foreign := auth.NewTokenManager("other-secret", 15*time.Minute, time.Hour)
	token, _, err := foreign.GenerateAccessToken(&domain.User{ID: "u1", Username: "mallory", Role: domain.RoleAdmin})
	require.NoError(t, err)

	resp, err := app.Test(bearerRequest(fiber.MethodGet, "/api/admin/reports", token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteRejectsRefreshToken(t *testing.T) {
	tm := auth.NewTokenManager("guard-secret", 15*time.Minute, time.Hour)
	app := newGuardedApp(tm)

	refresh, _, err := tm.GenerateRefreshToken(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	resp, err := app.Test(bearerRequest(fiber.MethodGet, "/api/messages", refresh))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRouteRejectsUserRole(t *testing.T) {
	tm := auth.NewTokenManager("guard-secret", 15*time.Minute, time.Hour)
	app := newGuardedApp(tm)

	token, _, err := tm.GenerateAccessToken(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleUser})
	require.NoError(t, err)

	resp, err := app.Test(bearerRequest(fiber.MethodGet, "/api/admin/reports", token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

func TestAdminRouteAcceptsAdminRole(t *testing.T) {
	tm := auth.NewTokenManager("guard-secret", 15*time.Minute, time.Hour)
	app := newGuardedApp(tm)

	token, _, err := tm.GenerateAccessToken(&domain.User{ID: "a1", Username: "root", Role: domain.RoleAdmin})
	require.NoError(t, err)

	resp, err := app.Test(bearerRequest(fiber.MethodGet, "/api/admin/reports", token))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestBrowserPathRedirectsUnauthenticated(t *testing.T) {
	tm := auth.NewTokenManager("guard-secret", 15*time.Minute, time.Hour)
	app := newGuardedApp(tm)

	resp, err := app.Test(bearerRequest(fiber.MethodGet, "/account", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestRequestLoggerObservesRenderedStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, zap.New(core), metrics, time.Second)
	app.Get("/api/forbidden", func(c *fiber.Ctx) error {
		return apperrors.NewForbidden("insufficient role")
	})
	app.Get("/api/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/forbidden", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/ok", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The logger and counters must carry the status the client saw,
	// not the default left before the error envelope was rendered.
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	statuses := map[string]int64{}
	for _, entry := range entries {
		fields := entry.ContextMap()
		statuses[fields["path"].(string)] = fields["status"].(int64)
	}
	require.Equal(t, int64(fiber.StatusForbidden), statuses["/api/forbidden"])
	require.Equal(t, int64(fiber.StatusOK), statuses["/api/ok"])

	require.Equal(t, int64(1), metrics.RequestCount("/api/forbidden", fiber.MethodGet, fiber.StatusForbidden))
	require.Equal(t, int64(0), metrics.RequestCount("/api/forbidden", fiber.MethodGet, fiber.StatusOK))
	require.Equal(t, int64(1), metrics.ErrorCount("/api/forbidden", fiber.MethodGet, "FORBIDDEN"))
}

func TestUnknownRouteMapsToNotFoundEnvelope(t *testing.T) {
	tm := auth.NewTokenManager("guard-secret", 15*time.Minute, time.Hour)
	app := newGuardedApp(tm)

	resp, err := app.Test(bearerRequest(fiber.MethodGet, "/api/nope", ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
