package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRegistrar struct {
	path string
}

func (s stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(s.path, func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

func TestNewRouterDefaultsToV1(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.APIVersion())
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Register(stubRegistrar{path: "/ping"})
	r.Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v2/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterRegisterMountsUnderAPIGroup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(stubRegistrar{path: "/ping"})
	r.Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterRegisterGroupAppliesPrefixAndMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var middlewareRan bool
	r.RegisterGroup("/mobile", stubRegistrar{path: "/dashboard"}, func(c *gin.Context) {
		middlewareRan = true
		c.Next()
	})
	r.Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/mobile/dashboard", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, middlewareRan)
}

func TestRouterGroupMiddlewareDoesNotLeak(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var middlewareRan bool
	r.Register(stubRegistrar{path: "/plain"})
	r.RegisterGroup("/mobile", stubRegistrar{path: "/dashboard"}, func(c *gin.Context) {
		middlewareRan = true
		c.Next()
	})
	r.Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plain", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, middlewareRan)
}
