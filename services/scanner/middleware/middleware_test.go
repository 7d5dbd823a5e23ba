package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/RuvinSL/alt-audit/pkg/logger"
	"github.com/RuvinSL/alt-audit/pkg/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records log calls for assertions
type TestLogger struct {
	InfoCalls  []LogCall
	ErrorCalls []LogCall
	mu         sync.Mutex
}

type LogCall struct {
	Message string
	Args    []any
}

func (t *TestLogger) Info(msg string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.InfoCalls = append(t.InfoCalls, LogCall{Message: msg, Args: args})
}

func (t *TestLogger) Error(msg string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ErrorCalls = append(t.ErrorCalls, LogCall{Message: msg, Args: args})
}

func (t *TestLogger) Debug(msg string, args ...any)      {}
func (t *TestLogger) Warn(msg string, args ...any)       {}
func (t *TestLogger) With(args ...any) interfaces.Logger { return t }

// inFlightCollector adds the gauge methods to a gomock collector
type inFlightCollector struct {
	*mocks.MockMetricsCollector
	inc, dec int
}

func (c *inFlightCollector) IncRequestsInFlight() { c.inc++ }
func (c *inFlightCollector) DecRequestsInFlight() { c.dec++ }

type testHandler struct {
	statusCode int
	body       string
	panicValue any
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.panicValue != nil {
		panic(h.panicValue)
	}
	if h.statusCode > 0 {
		w.WriteHeader(h.statusCode)
	}
	if h.body != "" {
		_, _ = w.Write([]byte(h.body))
	}
}

func TestRequestID_KeepsExistingID(t *testing.T) {
	var captured string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = logger.RequestIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "existing-request-123")
	w := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(w, req)

	assert.Equal(t, "existing-request-123", captured)
	assert.Equal(t, "existing-request-123", w.Header().Get("X-Request-ID"))
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	var captured string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = logger.RequestIDFromContext(r.Context())
	})

	w := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	requestID := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Equal(t, requestID, captured)
}

func TestLogging_RequestAndResponse(t *testing.T) {
	log := &TestLogger{}
	handler := RequestID(Logging(log)(&testHandler{statusCode: http.StatusCreated, body: "Created"}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", nil)
	req.Header.Set("X-Request-ID", "log-test-123")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	require.Len(t, log.InfoCalls, 2)
	assert.Equal(t, "Request started", log.InfoCalls[0].Message)
	assert.Contains(t, log.InfoCalls[0].Args, "/api/v1/scans")
	assert.Contains(t, log.InfoCalls[0].Args, "log-test-123")

	assert.Equal(t, "Request completed", log.InfoCalls[1].Message)
	assert.Contains(t, log.InfoCalls[1].Args, http.StatusCreated)
}

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	collector := &inFlightCollector{MockMetricsCollector: mocks.NewMockMetricsCollector(ctrl)}
	collector.EXPECT().
		RecordRequest(http.MethodGet, "/api/v1/scans/{id}", http.StatusNotFound, gomock.Any()).
		Times(1)

	router := mux.NewRouter()
	router.Use(Metrics(collector))
	router.Handle("/api/v1/scans/{id}", &testHandler{statusCode: http.StatusNotFound})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, collector.inc)
	assert.Equal(t, 1, collector.dec)
}

func TestMetrics_DefaultStatusCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	collector := mocks.NewMockMetricsCollector(ctrl)
	collector.EXPECT().RecordRequest(http.MethodPost, "/test", http.StatusOK, gomock.Any())

	w := httptest.NewRecorder()
	Metrics(collector)(&testHandler{body: "OK"}).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", nil))

	assert.Equal(t, "OK", w.Body.String())
}

func TestRecovery(t *testing.T) {
	t.Run("no panic", func(t *testing.T) {
		log := &TestLogger{}
		w := httptest.NewRecorder()

		Recovery(log)(&testHandler{body: "OK"}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, "OK", w.Body.String())
		assert.Empty(t, log.ErrorCalls)
	})

	t.Run("panic", func(t *testing.T) {
		log := &TestLogger{}
		w := httptest.NewRecorder()

		Recovery(log)(&testHandler{panicValue: "something went wrong"}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal Server Error")
		require.Len(t, log.ErrorCalls, 1)
		assert.Equal(t, "Panic recovered", log.ErrorCalls[0].Message)
		assert.Contains(t, log.ErrorCalls[0].Args, "something went wrong")
	})
}

func TestCORS(t *testing.T) {
	t.Run("regular request", func(t *testing.T) {
		w := httptest.NewRecorder()
		CORS()(&testHandler{body: "OK"}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/scans", nil))

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-User-ID")
		assert.Equal(t, "OK", w.Body.String())
	})

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		CORS()(&testHandler{body: "Should not be called"}).ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/scans", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusInternalServerError)
	_, err := rw.Write([]byte("body"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, rw.statusCode)
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
