package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/deptemp/pkg/composables"
)

func newTestLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.DebugLevel)
	return logger
}

func TestWithLogger_PropagatesRequestIDAndLogsStatus(t *testing.T) {
	var buf bytes.Buffer
	var seenID string
	h := WithLogger(newTestLogger(&buf), DefaultLoggerOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = composables.UseRequestID(r.Context())
		body, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{"dname":"SALES"}`, string(body), "body must still be readable downstream")
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/dept", strings.NewReader(`{"dname":"SALES"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "req-1", seenID)
	require.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var last map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	require.Equal(t, "request completed", last["msg"])
	require.EqualValues(t, http.StatusCreated, last["status"])
	require.Equal(t, "POST", last["method"])
	require.Equal(t, "/dept", last["uri"])
	require.Contains(t, last, "exec_time")
}

func TestWithLogger_RecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	h := WithLogger(newTestLogger(&buf), DefaultLoggerOptions())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dept", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"message":"Internal Server Error. [boom]"}`, rec.Body.String())
	require.Contains(t, buf.String(), "panic recovered")
}

func TestProvide(t *testing.T) {
	type key struct{}
	h := Provide(key{}, "value")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "value", r.Context().Value(key{}))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestLimitConcurrency_AbandonsWhenContextEnds(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	h := LimitConcurrency(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}()
	<-entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	close(release)
	<-done
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestsPerPeriod: 1})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/dept", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/dept", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.JSONEq(t, `{"message":"Too Many Requests."}`, second.Body.String())
}

func TestCors(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/dept", nil)
	req.Header.Set("Origin", "http://allowed.test")
	rec := httptest.NewRecorder()
	Cors("http://allowed.test")(next).ServeHTTP(rec, req)
	require.Equal(t, "http://allowed.test", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	Cors()(next).ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
