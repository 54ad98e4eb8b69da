package obs

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDIsGeneratedAndEchoed(t *testing.T) {
	var seen string
	router := gin.New()
	router.Use(Middleware{}.RequestID())
	router.GET("/x", func(c *gin.Context) {
		seen = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "given")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "given", seen)
}

func TestLoggerMiddlewareWritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	mw := Middleware{Logger: NewLoggerTo(&buf, "prod")}
	router := gin.New()
	router.Use(mw.RequestID(), mw.LoggerMiddleware())
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestReadyz(t *testing.T) {
	router := gin.New()
	ok := HealthHandlers{Checks: map[string]Check{"store": func(context.Context) error { return nil }}}
	down := HealthHandlers{Checks: map[string]Check{"mongo": func(context.Context) error { return errors.New("no primary") }}}
	router.GET("/ok", ok.Readyz)
	router.GET("/down", down.Readyz)
	router.GET("/livez", down.Livez)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no primary")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
