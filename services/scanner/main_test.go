package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RuvinSL/alt-audit/pkg/config"
	"github.com/RuvinSL/alt-audit/pkg/logger"
	"github.com/RuvinSL/alt-audit/pkg/metrics"
	"github.com/RuvinSL/alt-audit/pkg/mocks"
	"github.com/RuvinSL/alt-audit/pkg/models"
	"github.com/RuvinSL/alt-audit/pkg/store"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	server  *httptest.Server
	scanner *mocks.MockScanner
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	db, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	collector := metrics.NewPrometheusCollector(serviceName)
	registry := prometheus.NewRegistry()
	registry.MustRegister(collector.GetCollectors()...)

	scanner := mocks.NewMockScanner(ctrl)
	router := newRouter(config.Default(), logger.Discard(), collector, registry, scanner, db)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{server: server, scanner: scanner}
}

func (ts *testServer) do(t *testing.T, method, path, body, user string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	require.NoError(t, err)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}

	resp, err := ts.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_ScanLifecycle(t *testing.T) {
	ts := newTestServer(t)

	ts.scanner.EXPECT().ScanURL(gomock.Any(), "https://example.com").Return(models.ScanOutcome{
		URL:                "https://example.com",
		TotalImages:        1,
		ImagesWithAlt:      1,
		CoveragePercentage: 100,
		Images: []models.ImageCandidate{
			{URL: "https://example.com/a.png", HasAltText: true, Source: models.ImageSourceTag},
		},
		Status:    models.ScanStatusCompleted,
		ScannedAt: time.Now(),
	})

	resp := ts.do(t, http.MethodPost, "/api/v1/scans", `{"url":"https://example.com"}`, "user-1")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var record models.ScanRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&record))
	require.NotEmpty(t, record.ID)

	resp = ts.do(t, http.MethodGet, "/api/v1/scans/"+record.ID, "", "user-1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/scans/"+record.ID+"/images?has_alt=true", "", "user-1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/scans/"+record.ID+"/export.csv", "", "user-1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))

	resp = ts.do(t, http.MethodGet, "/api/v1/scans/"+record.ID, "", "someone-else")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodDelete, "/api/v1/scans/"+record.ID, "", "user-1")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/scans/"+record.ID, "", "user-1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health models.HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, serviceName, health.Service)

	resp = ts.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
	assert.Contains(t, string(body), `path="/health"`)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "put on collection", method: http.MethodPut, path: "/api/v1/scans"},
		{name: "delete on collection", method: http.MethodDelete, path: "/api/v1/scans"},
		{name: "patch on record", method: http.MethodPatch, path: "/api/v1/scans/abc"},
		{name: "get on rescan", method: http.MethodGet, path: "/api/v1/scans/abc/rescan"},
		{name: "post on images", method: http.MethodPost, path: "/api/v1/scans/abc/images"},
		{name: "post on health", method: http.MethodPost, path: "/health"},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.do(t, tt.method, tt.path, `{}`, "user-1")
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		})
	}
}

func TestRouter_UnknownPath(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/v1/nothing-here", "", "user-1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewScanner_DefaultConfig(t *testing.T) {
	scanner, err := newScanner(config.Default(), logger.Discard(), metrics.Noop{})
	require.NoError(t, err)
	assert.NotNil(t, scanner)
}

func TestNewScanner_InvalidPolicy(t *testing.T) {
	cfg := config.Default()
	cfg.Network.BlockedCIDRs = []string{"not-a-cidr"}

	_, err := newScanner(cfg, logger.Discard(), metrics.Noop{})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, newLogger(config.ServerConfig{LogLevel: "debug"}))
	assert.NotNil(t, newLogger(config.ServerConfig{LogLevel: "info", LogToFile: true, LogDir: t.TempDir()}))
}
