package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestInitAndLevelString(t *testing.T) {
	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	Init("warn")
	defer Init("info")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg")

	out := buf.String()
	if strings.Contains(out, "debug-msg") || strings.Contains(out, "info-msg") {
		t.Fatalf("debug/info messages should be suppressed at warn level: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn-msg") {
		t.Fatalf("warn message missing: %q", out)
	}
	if !strings.Contains(out, "[ERROR] error-msg") {
		t.Fatalf("error message missing: %q", out)
	}
}

func TestMiddleware_LogsStatusByLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})
	Init("info")

	g := gin.New()
	g.Use(Middleware())
	g.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	g.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	g.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	g.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := buf.String()
	if !strings.Contains(out, "[INFO] GET /ok -> 200") {
		t.Fatalf("expected info line for /ok, got %q", out)
	}
	if !strings.Contains(out, "[WARN] GET /missing -> 404") {
		t.Fatalf("expected warn line for /missing, got %q", out)
	}
}
