package delivery

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "fundraise-backend/internal/auth/domain"
	"fundraise-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct {
	usecase.AuthUsecase
	user *authdomain.User
}

func (s *stubAuth) ValidateToken(token string) (*authdomain.User, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return s.user, nil
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	alice := &authdomain.User{ID: "u1", Username: "alice"}

	r := gin.New()
	r.GET("/me", AuthMiddleware(&stubAuth{user: alice}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username, "id": c.GetString(ContextUserIDKey)})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"username":"alice","id":"u1"}`, w.Body.String())
			}
		})
	}
}

func TestCurrentUserOutsideMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))
}
