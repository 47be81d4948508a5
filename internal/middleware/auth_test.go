package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"contentcraft-api/internal/models"
	"contentcraft-api/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	user *models.User
	err  error
}

func (f *fakeAuthService) VerifyToken(_ string) (*models.User, error) {
	return f.user, f.err
}

func TestAuthMiddlewarePutsUserInContext(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "user@example.com"}
	var seen *models.User

	handler := AuthMiddleware(&fakeAuthService{user: user})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = services.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/usage", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	handler := AuthMiddleware(&fakeAuthService{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/usage", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authenticated")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	handler := AuthMiddleware(&fakeAuthService{err: errors.New("invalid token")})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/usage", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractTokenFromHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.Empty(t, extractTokenFromHeader(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", extractTokenFromHeader(req))

	req.Header.Set("Authorization", "abc123")
	assert.Empty(t, extractTokenFromHeader(req))
}
