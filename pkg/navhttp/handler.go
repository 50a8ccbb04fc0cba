// Package navhttp serves targets over HTTP.
//
// A Handler resolves each request URL into a target and hands it to a render
// function:
//
//	h := navhttp.NewHandler(pages.ParsePage, func(w http.ResponseWriter, r *http.Request, p pages.Page) {
//		// write the page for p
//	})
//
//	r := chi.NewRouter()
//	navhttp.Mount(r, "/app", h)
//
// Under chi the part of the path below the mount point is resolved.
// Elsewhere the handler strips its configured base.
package navhttp

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/nestroute/pkg/routepath"
	"github.com/vango-dev/nestroute/pkg/target"
)

// Default tracer name.
const defaultTracerName = "nestroute"

// SpanName is the name of the span started for every request.
const SpanName = "nestroute.resolve"

// RenderFunc writes the response for a resolved target.
type RenderFunc[T any] func(w http.ResponseWriter, r *http.Request, t T)

// Option configures a Handler.
type Option func(*config)

type config struct {
	base     string
	notFound http.Handler
	logger   *slog.Logger
	tracer   trace.Tracer
}

// WithBase sets the path the handler is served below, such as "/app". It is
// used when the request carries no chi route context, and by Href.
func WithBase(base string) Option {
	return func(c *config) {
		c.base = base
	}
}

// WithNotFound sets the handler for requests that resolve to no target.
// Default: http.NotFound
func WithNotFound(h http.Handler) Option {
	return func(c *config) {
		c.notFound = h
	}
}

// WithLogger sets the logger. Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer sets the tracer. Default: the "nestroute" tracer of the global
// OpenTelemetry provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// Handler resolves requests into targets of type T.
type Handler[T target.Target] struct {
	parse  target.ParseFunc[T]
	render RenderFunc[T]
	config
}

// NewHandler creates a handler parsing request URLs with parse and writing
// matches with render.
func NewHandler[T target.Target](parse target.ParseFunc[T], render RenderFunc[T], opts ...Option) *Handler[T] {
	h := &Handler[T]{parse: parse, render: render}
	for _, opt := range opts {
		opt(&h.config)
	}
	if h.notFound == nil {
		h.notFound = http.NotFoundHandler()
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.tracer == nil {
		h.tracer = otel.Tracer(defaultTracerName)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := h.routePath(r)

	ctx, span := h.tracer.Start(r.Context(), SpanName,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("nestroute.path", path)),
	)
	defer span.End()

	t, ok := h.Resolve(r)
	span.SetAttributes(attribute.Bool("nestroute.matched", ok))
	if !ok {
		h.logger.Debug("nestroute not found", "path", path, "query", r.URL.RawQuery)
		h.notFound.ServeHTTP(w, r.WithContext(ctx))
		return
	}
	span.SetAttributes(attribute.String("nestroute.target", fmt.Sprintf("%T", t)))
	h.render(w, r.WithContext(ctx), t)
}

// Resolve parses the target of r.
func (h *Handler[T]) Resolve(r *http.Request) (T, bool) {
	var zero T

	segments, err := routepath.SplitPath(h.routePath(r))
	if err != nil {
		return zero, false
	}
	if rctx := chi.RouteContext(r.Context()); rctx == nil || rctx.RoutePath == "" {
		base, err := routepath.SplitPath(h.base)
		if err != nil || len(segments) < len(base) || !slices.Equal(segments[:len(base)], base) {
			return zero, false
		}
		segments = segments[len(base):]
	}
	return h.parse(segments, routepath.ParseQuery(r.URL.RawQuery))
}

// routePath returns the escaped path to resolve: chi's remaining route path
// when mounted, else the full request path.
func (h *Handler[T]) routePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		// chi routes on the decoded path unless the request has a RawPath.
		if r.URL.RawPath == "" {
			return (&url.URL{Path: rctx.RoutePath}).EscapedPath()
		}
		return rctx.RoutePath
	}
	return r.URL.EscapedPath()
}

// Href returns the URL path of t below the handler's base.
func (h *Handler[T]) Href(t T) string {
	return href(h.base, t)
}

func href(base string, t target.Target) string {
	if base == "" || base == "/" {
		return target.Location(t)
	}
	u, err := target.AppendURL(base, t)
	if err != nil {
		return target.Location(t)
	}
	return u
}

// Mount serves h below base on r.
func Mount(r chi.Router, base string, h http.Handler) {
	if base == "" {
		base = "/"
	}
	r.Mount(base, h)
}

// Redirect replies with a redirect to the location of t below base.
func Redirect(w http.ResponseWriter, r *http.Request, base string, t target.Target) {
	http.Redirect(w, r, href(base, t), http.StatusFound)
}
