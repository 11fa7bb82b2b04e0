package authorization

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NeuroScanAI/config/jwt"
	"NeuroScanAI/models"
	"NeuroScanAI/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubResolver map[string]models.Identity

var errStoreDown = errors.New("server selection timeout")

func (s stubResolver) ResolveIdentity(_ context.Context, id string) (*models.Identity, error) {
	if id == "down" {
		return nil, errStoreDown
	}
	identity, ok := s[id]
	if !ok {
		return nil, &services.NotFoundError{Message: "User not found"}
	}
	return &identity, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	resolver := stubResolver{"u1": {ID: "u1", Role: models.RoleDoctor, Name: "Dr. One"}}
	r.GET("/me", JWTAuth("secret", resolver), func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, identity)
	})
	return r
}

func call(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := newRouter()
	valid, _ := jwt.GenerateJWT("u1", "doctor", "secret", time.Hour)
	expired, _ := jwt.GenerateJWT("u1", "doctor", "secret", -time.Hour)
	unknown, _ := jwt.GenerateJWT("u2", "doctor", "secret", time.Hour)
	forged, _ := jwt.GenerateJWT("u1", "doctor", "other", time.Hour)
	storeDown, _ := jwt.GenerateJWT("down", "doctor", "secret", time.Hour)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"no header", "", http.StatusUnauthorized, "no token provided"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "no token provided"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "token failed"},
		{"forged", "Bearer " + forged, http.StatusUnauthorized, "token failed"},
		{"unknown user", "Bearer " + unknown, http.StatusUnauthorized, "user not found"},
		{"store unavailable", "Bearer " + storeDown, http.StatusInternalServerError, "Something went wrong!"},
		{"valid", "Bearer " + valid, http.StatusOK, `"name":"Dr. One"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestGetIdentity_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetIdentity(c)
	assert.False(t, ok)
}
