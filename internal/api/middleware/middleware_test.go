package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type manualClock struct{ t time.Time }

func (c *manualClock) now() time.Time          { return c.t }
func (c *manualClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRateLimiter_Allow(t *testing.T) {
	clock := &manualClock{t: time.Unix(1_700_000_000, 0)}
	rl := NewRateLimiter(2, time.Second)
	rl.now = clock.now
	rl.lastTime = clock.t

	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())

	clock.advance(250 * time.Millisecond)
	assert.False(t, rl.Allow())
	clock.advance(250 * time.Millisecond)
	assert.True(t, rl.Allow())

	// refill never exceeds capacity
	clock.advance(time.Hour)
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}

func TestDeduplicator_Seen(t *testing.T) {
	clock := &manualClock{t: time.Unix(1_700_000_000, 0)}
	d := NewDeduplicator(time.Second)
	d.now = clock.now

	assert.False(t, d.seen("a"))
	assert.True(t, d.seen("a"))
	assert.False(t, d.seen("b"))

	clock.advance(2 * time.Second)
	assert.False(t, d.seen("a"))

	clock.advance(time.Minute)
	assert.False(t, d.seen("c"))
	d.mu.Lock()
	assert.Len(t, d.requests, 1)
	d.mu.Unlock()
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	echo := func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(body))
	}
	r.POST("/echo", echo)
	r.GET("/echo", echo)
	return r
}

func serve(r http.Handler, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/echo", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDeduplicationMiddleware(t *testing.T) {
	r := newEngine(NewDeduplicator(time.Minute).Middleware())

	first := serve(r, http.MethodPost, `{"a":1}`)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, `{"a":1}`, first.Body.String())

	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, `{"a":1}`).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, `{"a":2}`).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "").Code)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestDeduplicationMiddleware_ReadErrors(t *testing.T) {
	r := newEngine(BodySizeLimit(8), NewDeduplicator(time.Minute).Middleware())

	req := httptest.NewRequest(http.MethodPost, "/echo", failingReader{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_REQUEST")

	req = httptest.NewRequest(http.MethodPost, "/echo", io.MultiReader(strings.NewReader("way too large")))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "REQUEST_TOO_LARGE")
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(8))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "small").Code)
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(r, http.MethodPost, "way too large").Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(RateLimit(1, time.Hour))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "").Code)
	rec := serve(r, http.MethodGet, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.RegisterGauge("things", "Number of things", func() float64 { return 3 })
	m.ObserveRemote("ok")
	r := newEngine(m.HTTPMiddleware())
	serve(r, http.MethodGet, "")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "things 3")
	assert.Contains(t, body, `remote_suggestion_requests_total{outcome="ok"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/echo",status_code="200"} 1`)
}
