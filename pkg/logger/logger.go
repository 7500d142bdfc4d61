package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Leveled logger shared by the glovebox services.
// Init(level) once at startup; Debug/Info/Warn/Error/Fatal variants after that.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	logger *log.Logger = log.New(os.Stdout, "", 0)
	level  Level       = LevelInfo
)

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(l)
}

// ParseLevel maps a level name to a Level, falling back to Info.
func ParseLevel(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// SetOutput redirects log output (tests capture it with a buffer).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "", 0)
}

func header(lvl string) string {
	return fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(lvl))
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func output(lvl Level, name, format string, v ...interface{}) {
	if !shouldLog(lvl) {
		return
	}
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Printf(header(name)+format, v...)
}

func Debugf(format string, v ...interface{}) { output(LevelDebug, "debug", format, v...) }
func Infof(format string, v ...interface{})  { output(LevelInfo, "info", format, v...) }
func Warnf(format string, v ...interface{})  { output(LevelWarn, "warn", format, v...) }
func Errorf(format string, v ...interface{}) { output(LevelError, "error", format, v...) }

func Fatalf(format string, v ...interface{}) {
	output(LevelFatal, "fatal", format, v...)
	os.Exit(1)
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}

// Middleware logs one line per request: method, path, status and latency.
// Server errors are logged at error level, client errors at warn.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		format := "%s %s -> %d (%dms)"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start).Milliseconds()}
		switch {
		case status >= 500:
			Errorf(format, args...)
		case status >= 400:
			Warnf(format, args...)
		default:
			Infof(format, args...)
		}
	}
}
