package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockflow/backend/internal/infrastructure/auth"
	"github.com/stockflow/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "stockflow-test",
	})
}

func issueToken(t *testing.T, jwtService *auth.JWTService, roles ...string) (string, uuid.UUID, uuid.UUID) {
	t.Helper()
	tenantID := uuid.New()
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Email:    "jo@example.com",
		Roles:    roles,
	})
	require.NoError(t, err)
	return pair.AccessToken, tenantID, userID
}

func newProtectedEngine(cfg JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(JWTAuthMiddleware(cfg))
	engine.GET("/api/v1/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tenant_id": GetJWTTenantID(c),
			"user_id":   GetJWTUserID(c),
		})
	})
	engine.GET("/api/v1/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.GET("/api/v1/admin", RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	engine := newProtectedEngine(DefaultJWTConfig(jwtService))

	token, tenantID, userID := issueToken(t, jwtService, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tenantID.String())
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestJWTAuthMiddleware_MissingToken(t *testing.T) {
	engine := newProtectedEngine(DefaultJWTConfig(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTAuthMiddleware_GarbageToken(t *testing.T) {
	engine := newProtectedEngine(DefaultJWTConfig(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+"not.a.token")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestJWTAuthMiddleware_SkipPath(t *testing.T) {
	engine := newProtectedEngine(DefaultJWTConfig(newTestJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_RevokedToken(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()

	cfg := DefaultJWTConfig(jwtService)
	cfg.TokenBlacklist = blacklist
	engine := newProtectedEngine(cfg)

	token, _, _ := issueToken(t, jwtService)
	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Minute))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestRequireRole(t *testing.T) {
	jwtService := newTestJWTService()
	engine := newProtectedEngine(DefaultJWTConfig(jwtService))

	t.Run("admin passes", func(t *testing.T) {
		token, _, _ := issueToken(t, jwtService, "admin")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("viewer forbidden", func(t *testing.T) {
		token, _, _ := issueToken(t, jwtService, "viewer")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}
