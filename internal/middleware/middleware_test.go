package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agendaja-guias/internal/config"
	domain "github.com/BruksfildServices01/agendaja-guias/internal/domain/guia"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newAuthRouter(guard ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(&config.Config{JWTSecret: testSecret}))
	handlers := append(guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":      c.GetString(ContextUserID),
			"unidade":   c.GetString(ContextUnidadeID),
			"prestador": c.GetString(ContextPrestadorID),
			"actor":     string(c.MustGet(ContextActor).(domain.Actor)),
		})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ActorFromRole(t *testing.T) {
	r := newAuthRouter()

	w := do(r, signToken(t, jwt.MapClaims{
		"sub":       "user-1",
		"unidadeId": "u-1",
		"role":      "prestador",
		"exp":       time.Now().Add(time.Hour).Unix(),
	}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"user-1","unidade":"u-1","prestador":"user-1","actor":"prestador"}`, w.Body.String())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	r := newAuthRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "garbage").Code)

	w := do(r, signToken(t, jwt.MapClaims{"sub": "user-1", "role": "unidade"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "missing unidadeId")

	w = do(r, signToken(t, jwt.MapClaims{"sub": "user-1", "unidadeId": "u-1", "role": "cliente"}))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_actor")

	expired := signToken(t, jwt.MapClaims{
		"sub":       "user-1",
		"unidadeId": "u-1",
		"role":      "unidade",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusUnauthorized, do(r, expired).Code)
}

func TestRequireActor(t *testing.T) {
	r := newAuthRouter(RequireActor(domain.ActorUnidade))

	prestador := signToken(t, jwt.MapClaims{"sub": "user-1", "unidadeId": "u-1", "role": "prestador"})
	unidade := signToken(t, jwt.MapClaims{"sub": "user-2", "unidadeId": "u-1", "role": "unidade"})

	w := do(r, prestador)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden_actor")

	assert.Equal(t, http.StatusOK, do(r, unidade).Code)
}

func TestRequestIDAndRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger(zerolog.Nop()), Recovery(zerolog.Nop()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "rid-1", w.Header().Get(RequestIDHeader))
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.agendaja.com.br"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := httptest.NewRequest(http.MethodOptions, "/x", nil)
	preflight.Header.Set("Origin", "https://app.agendaja.com.br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, preflight)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.agendaja.com.br", w.Header().Get("Access-Control-Allow-Origin"))

	other := httptest.NewRequest(http.MethodGet, "/x", nil)
	other.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, other)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
