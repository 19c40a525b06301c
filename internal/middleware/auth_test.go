package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator struct {
	claims *TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*TokenClaims, error) {
	return s.claims, s.err
}

func doRequest(validator TokenValidator, header string) (*httptest.ResponseRecorder, uuid.UUID, bool) {
	engine := gin.New()

	var gotID uuid.UUID
	var gotOK bool
	engine.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		gotID, gotOK = UserID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w, gotID, gotOK
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w, _, _ := doRequest(&stubValidator{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	w, _, _ := doRequest(&stubValidator{}, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _, _ = doRequest(&stubValidator{}, "Bearer")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w, _, _ := doRequest(&stubValidator{err: errors.New("token expired")}, "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{claims: &TokenClaims{UserID: userID, Username: "alice"}}

	w, gotID, gotOK := doRequest(validator, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOK)
	assert.Equal(t, userID, gotID)
}

func TestUserID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)
}
