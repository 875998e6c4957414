package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func send(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_BurstThen429(t *testing.T) {
	h := RateLimit(time.Hour, 2, discardLogger())(okHandler())

	assert.Equal(t, http.StatusOK, send(h, "10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, send(h, "10.0.0.1:2222").Code)

	rec := send(h, "10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", errorCode(t, rec))
}

func TestRateLimit_IndependentPerIP(t *testing.T) {
	h := RateLimit(time.Hour, 1, discardLogger())(okHandler())

	assert.Equal(t, http.StatusOK, send(h, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(h, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusOK, send(h, "10.0.0.2:1").Code)
}

func TestVisitorStore_SweepsIdleVisitors(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newVisitorStore(rate.Every(time.Second), 1, time.Minute)
	s.now = func() time.Time { return now }
	s.lastSweep = now

	s.get("10.0.0.1")
	s.get("10.0.0.2")
	assert.Equal(t, 2, s.size())

	now = now.Add(2 * time.Minute)
	s.get("10.0.0.3")
	assert.Equal(t, 1, s.size())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.10:5555"
	assert.Equal(t, "192.168.1.10", ClientIP(req))

	req.Header.Set("X-Real-IP", "172.16.0.4")
	assert.Equal(t, "172.16.0.4", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "garbage, 203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}
