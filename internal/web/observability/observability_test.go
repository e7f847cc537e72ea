package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerLevelsByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	router := chi.NewRouter()
	router.Use(RequestLogger(logger))
	router.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Debug("rendering")
		_, _ = io.WriteString(w, "ok")
	})
	router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	for _, path := range []string{"/login", "/missing", "/boom"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 3)

	require.Equal(t, zapcore.InfoLevel, completed[0].Level)
	require.Equal(t, "/login", completed[0].ContextMap()["route"])
	require.EqualValues(t, 200, completed[0].ContextMap()["status"])
	require.EqualValues(t, 2, completed[0].ContextMap()["bytes"])

	require.Equal(t, zapcore.WarnLevel, completed[1].Level)
	require.EqualValues(t, 404, completed[1].ContextMap()["status"])

	require.Equal(t, zapcore.ErrorLevel, completed[2].Level)

	require.Equal(t, 1, logs.FilterMessage("rendering").Len(), "handler should see the request logger")
	require.Equal(t, "/login", logs.FilterMessage("rendering").All()[0].ContextMap()["path"])
}

func TestRecovererLogsPanicAndReturns500(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := Recoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("card exploded")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/register", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestFromContextDefaultsToNoop(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

func TestTraceRecordsServerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	var seenTraceID string
	router := chi.NewRouter()
	router.Use(Trace())
	router.Get("/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = TraceID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/forgot-password", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "GET /forgot-password", spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	require.Equal(t, spans[0].SpanContext().TraceID().String(), seenTraceID)

	var route string
	for _, attr := range spans[0].Attributes() {
		if attr.Key == "http.route" {
			route = attr.Value.AsString()
		}
	}
	require.Equal(t, "/forgot-password", route)
}

func TestMetricsExposePageRenders(t *testing.T) {
	m := NewMetrics()
	m.ObservePageRender("login", http.StatusOK, 3*time.Millisecond)
	m.ObservePageRender("login", http.StatusOK, 2*time.Millisecond)
	m.ObservePageRender("register", http.StatusInternalServerError, time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(m.renders.WithLabelValues("login", "200")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.renders.WithLabelValues("register", "500")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), `web_page_renders_total{page="login",status="200"} 2`))

	var nilMetrics *Metrics
	nilMetrics.ObservePageRender("login", http.StatusOK, time.Millisecond)
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger("chatty")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	debug, err := NewLogger("debug")
	require.NoError(t, err)
	require.True(t, debug.Core().Enabled(zapcore.DebugLevel))
}
