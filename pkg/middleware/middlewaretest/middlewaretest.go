// Package middlewaretest provides an authenticated gin router for handler tests.
package middlewaretest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glovebox/glovebox/backend/go-services/pkg/middleware"
)

type subjectToken string

func (s subjectToken) Claims(v interface{}) error {
	m, ok := v.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("unsupported claims type %T", v)
	}
	*m = map[string]interface{}{"sub": string(s)}
	return nil
}

// Verifier accepts any non-empty bearer token and uses it as the user id.
type Verifier struct{}

func (Verifier) Verify(_ context.Context, raw string) (middleware.Token, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty token")
	}
	return subjectToken(raw), nil
}

// NewRouter returns an engine and an authenticated group whose request time is fixed at now.
func NewRouter(now time.Time) (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	api := g.Group("/", middleware.RequestTime(func() time.Time { return now }), middleware.AuthMiddleware(Verifier{}, nil))
	return g, api
}

// Do serves a request as userID. An empty userID sends no Authorization header.
func Do(g http.Handler, method, path, userID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+userID)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}
