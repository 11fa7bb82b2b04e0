package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"NeuroScanAI/config"
	"NeuroScanAI/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		MongoEnabled:      false,
		JWTSecret:         "secret",
		StrictTransitions: true,
		RateLimitRPS:      5,
		RateLimitBurst:    10,
	}
}

func TestGetDefaultOptions(t *testing.T) {
	cfg := testConfig()
	cfg.JobsEnabled = true
	opts := GetDefaultOptions(cfg)
	assert.False(t, opts.MongoEnabled)
	assert.False(t, opts.MigrationEnabled)
	assert.True(t, opts.JobsEnabled)
	assert.True(t, opts.WebServerEnabled)
	assert.Equal(t, "0", opts.WebServerPort)
}

func TestBuild_InMemory(t *testing.T) {
	app, err := Build(context.Background(), GetDefaultOptions(testConfig()))
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.DB)
	assert.IsType(t, &repository.MemoryUserRepository{}, app.Users)
	assert.NotNil(t, app.UserService)
	assert.NotNil(t, app.AppointmentService)
	assert.NotNil(t, app.ChatService)
	assert.NotNil(t, app.Limiter)
}

func TestBuild_CacheFallback(t *testing.T) {
	cfg := testConfig()
	cfg.CacheEnabled = true
	cfg.RedisURL = "not-a-url"
	opts := GetDefaultOptions(cfg)

	app, err := Build(context.Background(), opts)
	require.NoError(t, err)
	assert.NotNil(t, app.UserService)
}

func TestNewEngine_RunsPreHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(context.Background(), GetDefaultOptions(testConfig()))
	require.NoError(t, err)

	r := NewEngine(app, func(r *gin.Engine, a *App) {
		assert.Same(t, app, a)
		r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "pong", w.Body.String())
}

func TestApp_CloseOrder(t *testing.T) {
	var order []int
	app := &App{}
	app.OnShutdown(func() { order = append(order, 1) })
	app.OnShutdown(func() { order = append(order, 2) })
	app.Close()
	assert.Equal(t, []int{2, 1}, order)
}
