package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRequestTime_FixedClock(t *testing.T) {
	fixed := time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)
	g := gin.New()
	g.Use(RequestTime(func() time.Time { return fixed }))
	var seen time.Time
	g.GET("/", func(c *gin.Context) { seen = Now(c) })

	g.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, seen.Equal(fixed))
}

func TestNow_WithoutMiddleware(t *testing.T) {
	g := gin.New()
	var seen time.Time
	g.GET("/", func(c *gin.Context) { seen = Now(c) })

	g.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.WithinDuration(t, time.Now(), seen, time.Minute)
}

func TestCORS_Preflight(t *testing.T) {
	g := gin.New()
	g.Use(CORS())
	g.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
