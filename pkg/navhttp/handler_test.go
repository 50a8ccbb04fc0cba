package navhttp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/nestroute/internal/demo/pages"
)

type recordingSpan struct {
	noop.Span
	name  string
	attrs map[attribute.Key]attribute.Value
	ended bool
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func (s *recordingSpan) End(...trace.SpanEndOption) {
	s.ended = true
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordingSpan
}

func (tr *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{name: name, attrs: make(map[attribute.Key]attribute.Value)}
	s.SetAttributes(cfg.Attributes()...)
	tr.spans = append(tr.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

func renderPage(w http.ResponseWriter, r *http.Request, p pages.Page) {
	fmt.Fprintf(w, "%T %+v", p, p)
}

func TestHandler_Base(t *testing.T) {
	h := NewHandler(pages.ParsePage, renderPage, WithBase("/app"))

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/app", http.StatusOK, "pages.Index"},
		{"/app/", http.StatusOK, "pages.Index"},
		{"/app/bar/42/d2", http.StatusOK, "pages.Bar {ID:42 "},
		{"/app/bar/a%2Fb", http.StatusOK, "{ID:a/b "},
		{"/app/search?q=x&q=y", http.StatusOK, "Terms:[x y]"},
		{"/app/nowhere", http.StatusNotFound, ""},
		{"/other/bar/42", http.StatusNotFound, ""},
		{"/", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_Chi(t *testing.T) {
	h := NewHandler(pages.ParsePage, renderPage)
	r := chi.NewRouter()
	Mount(r, "/app", h)

	srv := httptest.NewServer(r)
	defer srv.Close()

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/app", http.StatusOK, "pages.Index"},
		{"/app/me", http.StatusOK, "pages.Account"},
		{"/app/bar/a%20b/d2", http.StatusOK, "{ID:a b "},
		{"/app/bar/100%25", http.StatusOK, "{ID:100% "},
		{"/app/bar/x%2Fy", http.StatusOK, "{ID:x/y "},
		{"/app/unknown", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			var body bytes.Buffer
			body.ReadFrom(resp.Body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandler_Tracing(t *testing.T) {
	tracer := &recordingTracer{}
	h := NewHandler(pages.ParsePage, func(w http.ResponseWriter, r *http.Request, p pages.Page) {
		if !trace.SpanFromContext(r.Context()).(*recordingSpan).attrs["nestroute.matched"].AsBool() {
			t.Error("render should see the resolve span")
		}
	}, WithTracer(tracer))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bar/1", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/zzz", nil))

	if len(tracer.spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(tracer.spans))
	}
	hit, miss := tracer.spans[0], tracer.spans[1]
	if hit.name != SpanName || !hit.ended {
		t.Errorf("span = %q ended=%v, want %q ended", hit.name, hit.ended, SpanName)
	}
	if got := hit.attrs["nestroute.path"].AsString(); got != "/bar/1" {
		t.Errorf("nestroute.path = %q", got)
	}
	if got := hit.attrs["nestroute.target"].AsString(); got != "pages.Bar" {
		t.Errorf("nestroute.target = %q, want pages.Bar", got)
	}
	if miss.attrs["nestroute.matched"].AsBool() {
		t.Error("miss should record nestroute.matched=false")
	}
	if _, ok := miss.attrs["nestroute.target"]; ok {
		t.Error("miss should not record a target")
	}
}

func TestHandler_NotFoundAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := NewHandler(pages.ParsePage, renderPage,
		WithLogger(logger),
		WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bar", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if !strings.Contains(buf.String(), "nestroute not found") || !strings.Contains(buf.String(), "path=/bar") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestHrefAndRedirect(t *testing.T) {
	h := NewHandler(pages.ParsePage, renderPage, WithBase("/app"))
	if got := h.Href(pages.Bar{ID: "1", Details: pages.D2{}}); got != "/app/bar/1/d2" {
		t.Errorf("Href() = %q", got)
	}

	root := NewHandler(pages.ParsePage, renderPage)
	if got := root.Href(pages.Index{}); got != "/" {
		t.Errorf("Href(Index) = %q, want /", got)
	}

	rec := httptest.NewRecorder()
	Redirect(rec, httptest.NewRequest(http.MethodGet, "/old", nil), "/app", pages.Search{Terms: []string{"a b"}})
	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/app/search?q=a+b" {
		t.Errorf("Location = %q", got)
	}
}
