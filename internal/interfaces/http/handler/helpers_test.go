package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/query-service/internal/interfaces/http/dto"
)

// envelope mirrors dto.Response for unmarshalling in tests.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func newTestRouter(registrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	registrar.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doGet(t *testing.T, engine *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestParseDateRange(t *testing.T) {
	from, to, err := parseDateRange("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *from)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), *to)
}

func TestParseDateRangeEmptyStaysNil(t *testing.T) {
	from, to, err := parseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestParseDateRangeRejectsInvertedWindow(t *testing.T) {
	_, _, err := parseDateRange("2026-02-01", "2026-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be after")
}

func TestParseDateRangeRejectsBadFormat(t *testing.T) {
	_, _, err := parseDateRange("01/02/2026", "")
	require.Error(t, err)

	_, _, err = parseDateRange("", "not-a-date")
	require.Error(t, err)
}
