package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"memoras-backend/internal/config"
	"memoras-backend/internal/middleware"
	"memoras-backend/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redisLib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		mr.Close()
		redis.RedisClient = nil
	})
	redis.RedisClient = redisLib.NewClient(&redisLib.Options{Addr: mr.Addr()})

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	return router
}

func identityEcho(c *gin.Context) {
	ident := IdentityFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"user_id":       ident.UserID,
		"guest_session": ident.GuestSession,
		"anonymous":     ident.IsAnonymous(),
	})
}

func TestOptionalIdentity_AnonymousPassesThrough(t *testing.T) {
	router := setupRouter(t)
	router.GET("/whoami", OptionalIdentity(), identityEcho)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestOptionalIdentity_GuestHeader(t *testing.T) {
	router := setupRouter(t)
	router.GET("/whoami", OptionalIdentity(), identityEcho)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(GuestSessionHeader, "g1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"guest_session":"g1"`)
	assert.Contains(t, w.Body.String(), `"anonymous":false`)
}

func TestOptionalIdentity_ValidToken(t *testing.T) {
	router := setupRouter(t)
	router.GET("/whoami", OptionalIdentity(), identityEcho)

	token, err := GenerateJWT("user-1")
	assert.NoError(t, err)
	redis.StoreSession(t.Context(), token)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
}

// a garbage token must degrade to anonymous, never to an error
func TestOptionalIdentity_InvalidTokenIsSilent(t *testing.T) {
	router := setupRouter(t)
	router.GET("/whoami", OptionalIdentity(), identityEcho)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"anonymous":true`)
}

func TestRequireAuth_MissingToken(t *testing.T) {
	router := setupRouter(t)
	router.GET("/private", RequireAuth(), identityEcho)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization token is required")
}

func TestRequireAuth_RevokedSession(t *testing.T) {
	router := setupRouter(t)
	router.GET("/private", RequireAuth(), identityEcho)

	token, err := GenerateJWT("user-1")
	assert.NoError(t, err)
	// never stored, so the allow-list check fails even though the JWT is valid

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireAuth_ValidSession(t *testing.T) {
	router := setupRouter(t)
	router.GET("/private", RequireAuth(), identityEcho)

	token, err := GenerateJWT("user-1")
	assert.NoError(t, err)
	redis.StoreSession(t.Context(), token)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(GuestSessionHeader, "g1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"user-1"`)
	assert.Contains(t, w.Body.String(), `"guest_session":"g1"`)
}
