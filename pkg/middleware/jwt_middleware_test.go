package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daejeonmate/pkg/utils"
)

const middlewareTestSecret = "middleware-test-secret"

func adminTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(JWTAuthMiddleware(secret), RoleMiddleware("admin"))
	admin.POST("/sync", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func getWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/admin/sync", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAdminRouteAcceptsValidAdminToken(t *testing.T) {
	router := adminTestRouter(middlewareTestSecret)

	token, err := utils.CreateToken(uuid.New(), "admin", middlewareTestSecret, time.Hour)
	require.NoError(t, err)

	recorder := getWithToken(router, token)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAdminRouteRejectsMissingToken(t *testing.T) {
	router := adminTestRouter(middlewareTestSecret)

	recorder := getWithToken(router, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminRouteRejectsEmptyKeyForgery(t *testing.T) {
	router := adminTestRouter(middlewareTestSecret)

	// An attacker who guesses that no secret was configured signs with
	// the empty key. The configured secret must still win.
	claims := &utils.Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	require.NoError(t, err)

	recorder := getWithToken(router, forged)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminRouteRejectsAllTokensWhenSecretUnset(t *testing.T) {
	router := adminTestRouter("")

	claims := &utils.Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	require.NoError(t, err)

	recorder := getWithToken(router, forged)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAdminRouteRejectsNonAdminRole(t *testing.T) {
	router := adminTestRouter(middlewareTestSecret)

	token, err := utils.CreateToken(uuid.New(), "viewer", middlewareTestSecret, time.Hour)
	require.NoError(t, err)

	recorder := getWithToken(router, token)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
