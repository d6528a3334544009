package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sandol-kakao-backend/internal/config"
)

func newTestServer() *Server {
	cfg := config.Config{AllowedOrigin: "*"}
	blocks := config.Blocks{}
	return NewServer(cfg, blocks, nil, nil, nil, time.UTC, zap.NewNop())
}

func TestHealth(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMalformedPayloadYieldsErrorCard(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/meal/view", strings.NewReader(`{"userRequest":`))
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "logical errors still answer 200")
	assert.Contains(t, rec.Body.String(), "오류 발생")
	assert.Contains(t, rec.Body.String(), `"version":"2.0"`)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestPanicRecoveredAsErrorCard(t *testing.T) {
	// The nil user store makes any resolved request panic past payload parsing.
	srv := newTestServer()
	rec := httptest.NewRecorder()
	body := `{"userRequest":{"user":{"id":"kakao-1","properties":{}},"block":{"id":"b"}},"action":{}}`
	req := httptest.NewRequest(http.MethodPost, "/meal/view", strings.NewReader(body))
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "오류 발생")
}
