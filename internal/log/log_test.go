package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentSeed, Output: &buf})

	logger.InfoContext(context.Background(), "seed completed", FieldRecords, 60)

	out := buf.String()
	if !strings.Contains(out, "component=seed") {
		t.Errorf("expected component in %q", out)
	}
	if !strings.Contains(out, "records=60") {
		t.Errorf("expected records in %q", out)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.InfoContext(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	logger.WarnContext(context.Background(), "shown")
	if !strings.Contains(buf.String(), "component=app") {
		t.Errorf("default component missing in %q", buf.String())
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil || logger.Component() != "unknown" {
		t.Fatalf("unexpected fallback logger %+v", logger)
	}
}

func TestMiddlewareAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Component: ComponentHTTP, Output: &buf})

	h := Middleware(base)(RequestIDMiddleware(func(*http.Request) string { return "req_abc" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			FromContext(r.Context()).ErrorContext(r.Context(), "boom", FieldError, "x")
		}),
	))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	out := buf.String()
	if !strings.Contains(out, "request_id=req_abc") || !strings.Contains(out, "component=http") {
		t.Errorf("missing request context in %q", out)
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithComponent(ComponentHTTP).
		WithOperation(OpList).
		WithQuery("03", "phone", 2, 10).
		WithRequestID("").
		WithError(errors.New("bad"))

	if _, ok := f[FieldRequestID]; ok {
		t.Error("empty request id should be omitted")
	}
	if f[FieldError] != "bad" || f[FieldPage] != 2 || f[FieldMonth] != "03" {
		t.Errorf("unexpected fields %v", f)
	}
	if got := len(f.ToSlice()); got != len(f)*2 {
		t.Errorf("ToSlice len = %d, want %d", got, len(f)*2)
	}
}
