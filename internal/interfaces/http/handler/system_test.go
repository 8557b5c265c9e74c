package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/query-service/internal/infrastructure/config"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping() error {
	return p.err
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:    "erp-query-service",
			Env:     "test",
			Version: "1.2.3",
		},
		CQRS: config.CQRSConfig{
			CommandServiceURL: "http://commands.example.com",
		},
	}
}

func newSystemRouter(db Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewSystemHandler(testConfig(), db)
	h.RegisterRoutes(engine)
	h.RegisterAPIRoutes(engine.Group("/api/v1"))
	return engine
}

func getJSON(t *testing.T, engine *gin.Engine, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	return w
}

func TestHealthReportsConnected(t *testing.T) {
	engine := newSystemRouter(&stubPinger{})

	var body map[string]any
	w := getJSON(t, engine, "/health", &body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestHealthDegradedStillReturns200(t *testing.T) {
	engine := newSystemRouter(&stubPinger{err: errors.New("connection refused")})

	var body map[string]any
	w := getJSON(t, engine, "/api/health", &body)

	// degraded reads may still be served from cache
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "disconnected", body["database"])
}

func TestHealthNilPingerIsDegraded(t *testing.T) {
	engine := newSystemRouter(nil)

	var body map[string]any
	getJSON(t, engine, "/health", &body)
	assert.Equal(t, "degraded", body["status"])
}

func TestInfoDescribesEndpointGroups(t *testing.T) {
	engine := newSystemRouter(&stubPinger{})

	var body envelope
	w := getJSON(t, engine, "/info", &body)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, body.Success)

	var data struct {
		Name      string            `json:"name"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "erp-query-service", data.Name)
	assert.Equal(t, "/api/v1/inventory", data.Endpoints["inventory"])
	assert.Equal(t, "/api/v1/mobile", data.Endpoints["mobile"])
}

func TestErrorCatalogListsCodes(t *testing.T) {
	engine := newSystemRouter(&stubPinger{})

	var body envelope
	w := getJSON(t, engine, "/errors", &body)
	require.Equal(t, http.StatusOK, w.Code)

	var catalog []struct {
		Code       string `json:"code"`
		HTTPStatus int    `json:"http_status"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &catalog))
	require.NotEmpty(t, catalog)

	byCode := make(map[string]int, len(catalog))
	for _, entry := range catalog {
		byCode[entry.Code] = entry.HTTPStatus
	}
	assert.Equal(t, http.StatusNotFound, byCode["ERR_NOT_FOUND"])
	assert.Equal(t, http.StatusMethodNotAllowed, byCode["ERR_METHOD_NOT_ALLOWED"])
}

func TestCQRSInfoNamesCommandService(t *testing.T) {
	engine := newSystemRouter(&stubPinger{})

	var body envelope
	w := getJSON(t, engine, "/api/v1/cqrs", &body)
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Role           string   `json:"role"`
		CommandService string   `json:"command_service"`
		BlockedMethods []string `json:"blocked_methods"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "query", data.Role)
	assert.Equal(t, "http://commands.example.com", data.CommandService)
	assert.Contains(t, data.BlockedMethods, http.MethodPost)
}
