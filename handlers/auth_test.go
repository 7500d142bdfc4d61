package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glovebox/glovebox/backend/go-services/internal/config"
	"github.com/glovebox/glovebox/backend/go-services/internal/sessions"
	"github.com/glovebox/glovebox/backend/go-services/internal/tokens"
	"github.com/glovebox/glovebox/backend/go-services/internal/users"
	"github.com/glovebox/glovebox/backend/go-services/pkg/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret-32-bytes-xxxxxxx"
	cfg.JWT.AccessTokenTTL = 10 * time.Minute
	cfg.JWT.RefreshTokenTTL = time.Hour

	usersSvc := users.NewService(users.NewMemoryUserRepository())
	h := NewAuthHandler(cfg, usersSvc, sessions.NewService(sessions.NewMemoryRepository()))

	r := gin.New()
	h.Register(r)
	api := r.Group("/api/v1", middleware.AuthMiddleware(tokens.NewVerifier(cfg.JWT.Secret), usersSvc.Resolver(tokens.Issuer)))
	h.RegisterProfile(api)
	return r
}

func call(r http.Handler, method, path, bearer, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r http.Handler) authResponse {
	t.Helper()
	w := call(r, http.MethodPost, "/auth/register", "", `{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisterLoginAndProfile(t *testing.T) {
	r := newAuthRouter(t)
	reg := register(t, r)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, 600, reg.ExpiresIn)
	assert.NotContains(t, reg.User.Email, "password")

	w := call(r, http.MethodPost, "/auth/register", "", `{"name":"Again","email":"ALICE@example.com","password":"secret2"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(r, http.MethodPost, "/auth/login", "", `{"email":"alice@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, reg.User.ID, login.User.ID)

	w = call(r, http.MethodGet, "/api/v1/me", login.AccessToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = call(r, http.MethodPut, "/api/v1/me", login.AccessToken, `{"name":"Alicia"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alicia")

	w = call(r, http.MethodPut, "/api/v1/me", login.AccessToken, `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, http.MethodGet, "/api/v1/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r := newAuthRouter(t)
	w := call(r, http.MethodPost, "/auth/register", "", `{"name":"Bob","email":"bob@example.com","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = call(r, http.MethodPost, "/auth/register", "", `{"email":"bob@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefresh(t *testing.T) {
	r := newAuthRouter(t)
	reg := register(t, r)

	w := call(r, http.MethodPost, "/auth/refresh", "", `{"refreshToken":"`+reg.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)

	w = call(r, http.MethodPost, "/auth/refresh", "", `{"refreshToken":"unknown"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesRefreshAndAccessToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	sessions.SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer sessions.SetBlacklistClient(nil)

	r := newAuthRouter(t)
	reg := register(t, r)

	w := call(r, http.MethodPost, "/auth/logout", reg.AccessToken, `{"refreshToken":"`+reg.RefreshToken+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodGet, "/api/v1/me", reg.AccessToken, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token revoked")

	w = call(r, http.MethodPost, "/auth/refresh", "", `{"refreshToken":"`+reg.RefreshToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
