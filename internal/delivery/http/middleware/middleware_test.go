package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go-candidate-admin/internal/domain"
	"go-candidate-admin/pkg/apperror"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var fromCtx any
	r.GET("/", func(c *gin.Context) {
		fromCtx = c.Request.Context().Value(domain.KeyRequestID)
		c.String(http.StatusOK, c.GetString("RequestID"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())
	assert.Equal(t, id, fromCtx)

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "6f1c2a0e-4b7e-4a53-9d55-0c0f3c1a2b3d")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "6f1c2a0e-4b7e-4a53-9d55-0c0f3c1a2b3d", w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperror.NotFound("Candidate not found.")) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(errors.New("db password leaked")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Candidate not found.")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func csrfRouter() *gin.Engine {
	r := gin.New()
	r.Use(CSRFMiddleware(false))
	r.GET("/form", func(c *gin.Context) { c.String(http.StatusOK, CSRFToken(c)) })
	r.POST("/form", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestCSRF(t *testing.T) {
	r := csrfRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Body.String()
	require.Len(t, token, 2*CSRFTokenLength)
	cookie := w.Result().Cookies()[0]
	assert.Equal(t, CSRFTokenCookieName, cookie.Name)
	assert.Equal(t, token, cookie.Value)

	post := func(header, field string) int {
		form := url.Values{}
		if field != "" {
			form.Set(CSRFFormField, field)
		}
		req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: token})
		if header != "" {
			req.Header.Set(CSRFTokenHeaderName, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, post(token, ""))
	assert.Equal(t, http.StatusNoContent, post("", token))
	assert.Equal(t, http.StatusForbidden, post("", ""))
	assert.Equal(t, http.StatusForbidden, post("forged", ""))
	assert.Equal(t, http.StatusForbidden, post("", "forged"))
}

func limitedRouter(cfg RateLimitConfig) *gin.Engine {
	r := gin.New()
	r.Use(RateLimitMiddleware(cfg))
	r.POST("/submit", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hitN(r *gin.Engine, n int) []int {
	var codes []int
	for i := 0; i < n; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))
		codes = append(codes, w.Code)
	}
	return codes
}

func TestRateLimitInMemory(t *testing.T) {
	r := limitedRouter(SubmitRateLimitConfig(2, time.Minute))

	assert.Equal(t, []int{200, 200, 429}, hitN(r, 3))
}

func TestRateLimitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	cfg := SubmitRateLimitConfig(2, time.Minute)
	cfg.Client = client
	r := limitedRouter(cfg)

	assert.Equal(t, []int{200, 200, 429}, hitN(r, 3))
	assert.True(t, mr.Exists("rl:submit:192.0.2.1"))

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, []int{200}, hitN(r, 1))
}

func TestRateLimitRedisFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	cfg := SubmitRateLimitConfig(1, time.Minute)
	cfg.Client = client
	assert.Equal(t, []int{200, 429}, hitN(limitedRouter(cfg), 2), "falls back to memory")

	cfg.FailClosed = true
	assert.Equal(t, []int{503}, hitN(limitedRouter(cfg), 1))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://admin.example.com"}))
	r.GET("/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestRateLimitCustomReject(t *testing.T) {
	cfg := SubmitRateLimitConfig(1, time.Minute)
	cfg.Reject = func(c *gin.Context, status int, message string) {
		c.String(status, "page: "+message)
		c.Abort()
	}
	r := limitedRouter(cfg)

	hitN(r, 1)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/submit", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "page: Rate limit exceeded. Please try again later.", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
