package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return engine
}

func doRequest(engine *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCORSPreflight(t *testing.T) {
	engine := newEngine(CORS(DefaultCORSConfig()))
	engine.OPTIONS("/ping", func(c *gin.Context) {})

	rec := doRequest(engine, http.MethodOptions, "/ping", map[string]string{
		"Origin":                        "https://lab.example.com",
		"Access-Control-Request-Method": "POST",
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://lab.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-API-Key")
}

func TestCORSDisallowedOrigin(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = []string{"https://lab.example.com"}
	engine := newEngine(CORS(cfg))

	rec := doRequest(engine, http.MethodGet, "/ping", map[string]string{
		"Origin": "https://evil.example.com",
	})

	// The request itself still runs; only the CORS headers are withheld.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSNoOriginHeader(t *testing.T) {
	engine := newEngine(CORS(DefaultCORSConfig()))

	rec := doRequest(engine, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIKeyAuthEmptyKeyDisablesCheck(t *testing.T) {
	engine := newEngine(APIKeyAuth("", logging.NewNopLogger()))

	rec := doRequest(engine, http.MethodGet, "/ping", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyAuthRejectsWrongKey(t *testing.T) {
	engine := newEngine(APIKeyAuth("right", logging.NewNopLogger()))

	rec := doRequest(engine, http.MethodGet, "/ping", map[string]string{APIKeyHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "COMMON_003")

	rec = doRequest(engine, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKeyAuthAcceptsMatchingKey(t *testing.T) {
	engine := newEngine(APIKeyAuth("right", logging.NewNopLogger()))

	rec := doRequest(engine, http.MethodGet, "/ping", map[string]string{APIKeyHeader: "right"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var seen string
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/ping", func(c *gin.Context) {
		seen = RequestIDFromContext(c)
		c.Status(http.StatusOK)
	})

	rec := doRequest(engine, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	rec = doRequest(engine, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
