package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/pkg/jwt"
)

func authTestRouter(manager *jwt.Manager, admin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{AuthMiddleware(manager)}
	if admin {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/protected", handlers...)
	return router
}

func doAuthRequest(t *testing.T, router *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("test-secret")

	t.Run("valid access token passes identity into context", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		userID := uuid.New()

		var gotUserID uuid.UUID
		var gotName, gotRole string
		router.GET("/protected", AuthMiddleware(manager), func(c *gin.Context) {
			gotUserID = c.MustGet("user_id").(uuid.UUID)
			gotName = c.GetString("user_name")
			gotRole = c.GetString("role")
			c.Status(http.StatusOK)
		})

		token, err := manager.GenerateAccessToken(userID.String(), "Alice", "user")
		require.NoError(t, err)

		w := doAuthRequest(t, router, token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID, gotUserID)
		assert.Equal(t, "Alice", gotName)
		assert.Equal(t, "user", gotRole)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		router := authTestRouter(manager, false)
		w := doAuthRequest(t, router, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token is not accepted as access token", func(t *testing.T) {
		router := authTestRouter(manager, false)

		token, err := manager.GenerateRefreshToken(uuid.NewString())
		require.NoError(t, err)

		w := doAuthRequest(t, router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		router := authTestRouter(manager, false)

		forged, err := jwt.NewManager("other-secret").GenerateAccessToken(uuid.NewString(), "Mallory", "admin")
		require.NoError(t, err)

		w := doAuthRequest(t, router, forged)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed user ID claim is rejected", func(t *testing.T) {
		router := authTestRouter(manager, false)

		token, err := manager.GenerateAccessToken("not-a-uuid", "Alice", "user")
		require.NoError(t, err)

		w := doAuthRequest(t, router, token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	manager := jwt.NewManager("test-secret")

	t.Run("admin role passes", func(t *testing.T) {
		router := authTestRouter(manager, true)

		token, err := manager.GenerateAccessToken(uuid.NewString(), "Root", "admin")
		require.NoError(t, err)

		w := doAuthRequest(t, router, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-admin role is forbidden", func(t *testing.T) {
		router := authTestRouter(manager, true)

		token, err := manager.GenerateAccessToken(uuid.NewString(), "Alice", "user")
		require.NoError(t, err)

		w := doAuthRequest(t, router, token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
