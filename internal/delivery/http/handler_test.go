package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shortlink/internal/biz"
	"shortlink/internal/conf"
	"shortlink/internal/data"
	"shortlink/internal/infra/eventbus"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	bus := eventbus.NewEventBus(watermill.NopLogger{})
	t.Cleanup(func() { bus.Close() })

	c := &conf.Shortener{
		BaseURL:           "http://sho.rt",
		RequestsPerMinute: 10000,
	}
	uc := biz.NewLinkUsecase(data.NewMemoryLinkStore(), bus, c, log.DefaultLogger)
	handler := NewHandler(uc, zap.NewNop())
	limiter := NewRateLimiter(c.RequestsPerMinute)
	t.Cleanup(limiter.Stop)
	router := NewRouter(handler, zap.NewNop(), limiter)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func createLink(t *testing.T, srv *httptest.Server, body string) (*http.Response, LinkResponse) {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/v1/links", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var link LinkResponse
	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&link))
	}
	return resp, link
}

func TestCreateLink(t *testing.T) {
	srv := newTestServer(t)

	resp, link := createLink(t, srv, `{"original_url": "https://example.com/page"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, link.Created)
	assert.Equal(t, "https://example.com/page", link.OriginalURL)
	assert.Len(t, link.ShortCode, 6)
	assert.Equal(t, "http://sho.rt/"+link.ShortCode, link.ShortURL)
}

func TestCreateLink_Deduplicates(t *testing.T) {
	srv := newTestServer(t)

	first, firstLink := createLink(t, srv, `{"original_url": "https://example.com/page"}`)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second, secondLink := createLink(t, srv, `{"original_url": "https://example.com/page"}`)

	assert.Equal(t, http.StatusOK, second.StatusCode)
	assert.False(t, secondLink.Created)
	assert.Equal(t, firstLink.ShortCode, secondLink.ShortCode)
}

func TestCreateLink_CustomCode(t *testing.T) {
	srv := newTestServer(t)

	resp, link := createLink(t, srv, `{"original_url": "https://example.com", "custom_code": "mylink"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "mylink", link.ShortCode)
}

func TestCreateLink_CustomCodeConflict(t *testing.T) {
	srv := newTestServer(t)

	first, _ := createLink(t, srv, `{"original_url": "https://example.com/first", "custom_code": "mylink"}`)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second, _ := createLink(t, srv, `{"original_url": "https://example.com/second", "custom_code": "mylink"}`)

	assert.Equal(t, http.StatusBadRequest, second.StatusCode)
}

func TestCreateLink_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"missing URL", `{}`},
		{"empty URL", `{"original_url": ""}`},
		{"no scheme", `{"original_url": "example.com"}`},
		{"ftp scheme", `{"original_url": "ftp://example.com/file"}`},
		{"denylisted host", `{"original_url": "http://localhost:8000/admin"}`},
		{"denylisted loopback", `{"original_url": "http://127.0.0.1/internal"}`},
		{"custom code too short", `{"original_url": "https://example.com", "custom_code": "ab"}`},
		{"custom code with symbols", `{"original_url": "https://example.com", "custom_code": "my-link!"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := createLink(t, srv, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
		})
	}
}

func TestRedirect(t *testing.T) {
	srv := newTestServer(t)

	resp, link := createLink(t, srv, `{"original_url": "https://example.com/target"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	redirect, err := client.Get(srv.URL + "/" + link.ShortCode)
	require.NoError(t, err)
	defer redirect.Body.Close()

	assert.Equal(t, http.StatusFound, redirect.StatusCode)
	assert.Equal(t, "https://example.com/target", redirect.Header.Get("Location"))

	// The click is recorded.
	stats, err := http.Get(srv.URL + "/api/v1/links/" + link.ShortCode)
	require.NoError(t, err)
	defer stats.Body.Close()

	var statsResp StatsResponse
	require.NoError(t, json.NewDecoder(stats.Body).Decode(&statsResp))
	assert.Equal(t, int64(1), statsResp.Clicks)
}

func TestRedirect_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/nosuch1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetLinkStats(t *testing.T) {
	srv := newTestServer(t)

	resp, link := createLink(t, srv, `{"original_url": "https://example.com/stats"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	stats, err := http.Get(srv.URL + "/api/v1/links/" + link.ShortCode)
	require.NoError(t, err)
	defer stats.Body.Close()

	require.Equal(t, http.StatusOK, stats.StatusCode)

	var statsResp StatsResponse
	require.NoError(t, json.NewDecoder(stats.Body).Decode(&statsResp))
	assert.Equal(t, link.ShortCode, statsResp.ShortCode)
	assert.Equal(t, "https://example.com/stats", statsResp.OriginalURL)
	assert.Equal(t, int64(0), statsResp.Clicks)
}

func TestGetLinkStats_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/links/nosuch1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteLink(t *testing.T) {
	srv := newTestServer(t)

	resp, link := createLink(t, srv, `{"original_url": "https://example.com/delete"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/links/"+link.ShortCode, nil)
	require.NoError(t, err)

	deleted, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer deleted.Body.Close()

	assert.Equal(t, http.StatusNoContent, deleted.StatusCode)

	stats, err := http.Get(srv.URL + "/api/v1/links/" + link.ShortCode)
	require.NoError(t, err)
	defer stats.Body.Close()

	assert.Equal(t, http.StatusNotFound, stats.StatusCode)
}

func TestDeleteLink_NotFound(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/links/nosuch1", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIndex(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Message   string            `json:"message"`
		Endpoints map[string]string `json:"endpoints"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, "http://sho.rt/healthz", body.Endpoints["health"])
	assert.Equal(t, "http://sho.rt/api/v1/links", body.Endpoints["shorten"])
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestRateLimit(t *testing.T) {
	bus := eventbus.NewEventBus(watermill.NopLogger{})
	t.Cleanup(func() { bus.Close() })

	c := &conf.Shortener{
		BaseURL:           "http://sho.rt",
		RequestsPerMinute: 3,
	}
	uc := biz.NewLinkUsecase(data.NewMemoryLinkStore(), bus, c, log.DefaultLogger)
	handler := NewHandler(uc, zap.NewNop())
	limiter := NewRateLimiter(c.RequestsPerMinute)
	t.Cleanup(limiter.Stop)
	router := NewRouter(handler, zap.NewNop(), limiter)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	// Every request rides a fresh connection and therefore a fresh ephemeral
	// port. The limit is per client IP, so the bucket must still be shared.
	client := &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
	}

	limited := 0
	for i := 0; i < 10; i++ {
		resp, err := client.Get(fmt.Sprintf("%s/healthz", srv.URL))
		require.NoError(t, err)
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited++
			assert.Equal(t, "3", resp.Header.Get("X-RateLimit-Limit"))
			assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
		}
	}
	// Burst of 3, then the remaining 7 requests are rejected.
	assert.Equal(t, 7, limited)
}

func TestRateLimiter_KeysOnHost(t *testing.T) {
	rl := NewRateLimiter(1)
	t.Cleanup(rl.Stop)

	var status [2]int
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = fmt.Sprintf("10.0.0.1:%d", 40000+i)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		status[i] = rec.Code
	}

	assert.Equal(t, http.StatusOK, status[0])
	assert.Equal(t, http.StatusTooManyRequests, status[1])
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(10)
	rl.Stop()
	rl.Stop()
}
