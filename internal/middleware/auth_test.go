package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndinoServices/turnos-scheduler/internal/config"
	"github.com/AndinoServices/turnos-scheduler/internal/models"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(cfg *config.Config, roles ...models.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	group := r.Group("/")
	group.Use(AuthMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RequireRoles(roles...))
	}
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": CurrentUserID(c),
			"role":    CurrentRole(c),
		})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec := doRequest(protectedRouter(testConfig()), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	rec := doRequest(protectedRouter(testConfig()), "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidSignature(t *testing.T) {
	token := signedToken(t, "other-secret", jwt.MapClaims{
		"sub": 1, "role": "teacher", "exp": time.Now().Add(time.Hour).Unix(),
	})
	rec := doRequest(protectedRouter(testConfig()), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	token := signedToken(t, "test-secret", jwt.MapClaims{
		"sub": 1, "role": "teacher", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	rec := doRequest(protectedRouter(testConfig()), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareUnknownRole(t *testing.T) {
	token := signedToken(t, "test-secret", jwt.MapClaims{
		"sub": 1, "role": "superuser", "exp": time.Now().Add(time.Hour).Unix(),
	})
	rec := doRequest(protectedRouter(testConfig()), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token := signedToken(t, "test-secret", jwt.MapClaims{
		"sub": 42, "role": "representative", "exp": time.Now().Add(time.Hour).Unix(),
	})
	rec := doRequest(protectedRouter(testConfig()), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":42`)
	assert.Contains(t, rec.Body.String(), `"role":"representative"`)
}

func TestRequireRolesAllows(t *testing.T) {
	token := signedToken(t, "test-secret", jwt.MapClaims{
		"sub": 1, "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	})
	r := protectedRouter(testConfig(), models.RoleAdmin, models.RoleCoordinator)
	rec := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesForbids(t *testing.T) {
	token := signedToken(t, "test-secret", jwt.MapClaims{
		"sub": 1, "role": "representative", "exp": time.Now().Add(time.Hour).Unix(),
	})
	r := protectedRouter(testConfig(), models.RoleAdmin)
	rec := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
