package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"community-board/internal/domain"
	memorysession "community-board/internal/infra/session/memory"
	"community-board/internal/repository/mocks"
	"community-board/internal/service"
)

func protectedRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	userRepo := new(mocks.UserRepository)
	userRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&domain.User{ID: 1, Username: "alice", Password: string(hash)}, nil)

	auth, err := service.NewAuthService(userRepo, memorysession.NewMemorySessionRepository(), "test-secret", 1)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", Auth(auth), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetUint(ContextUserID),
			"username": c.GetString(ContextUsername),
		})
	})
	return router, auth
}

func TestAuth_AnonymousBrowserRedirects(t *testing.T) {
	router, _ := protectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAuth_InvalidBearerGets401(t *testing.T) {
	router, _ := protectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication required")
}

func TestAuth_MalformedAuthorizationHeaderGets401(t *testing.T) {
	router, _ := protectedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidCookiePassesWithIdentity(t *testing.T) {
	router, auth := protectedRouter(t)

	token, err := auth.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":1`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestAuth_LoggedOutTokenIsRejected(t *testing.T) {
	router, auth := protectedRouter(t)

	token, err := auth.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	require.NoError(t, auth.Logout(context.Background(), token))

	// The signature is still valid but the server-side session is gone.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
}
