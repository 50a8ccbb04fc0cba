package nav

import (
	"log/slog"
	"net/url"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/vango-dev/nestroute/pkg/routepath"
	"github.com/vango-dev/nestroute/pkg/target"
)

// Navigator reads and changes the current target of some routing level.
type Navigator[T any] interface {
	// Current returns the current target and whether the location matched.
	Current() (T, bool)

	// Navigate moves to t.
	Navigate(t T)
}

// Option configures a Router.
type Option func(*options)

type options struct {
	base    string
	logger  *slog.Logger
	metrics *Metrics
}

// WithBase mounts the router below a base path such as "/app". Locations
// whose leading segments differ from the base's do not match. A full URL is
// accepted; only its path is compared.
func WithBase(base string) Option {
	return func(o *options) {
		o.base = base
	}
}

// WithLogger sets the logger for location changes and navigations.
// Default: slog.Default()
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records router activity in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// Router keeps the target parsed from a History's current location.
//
// Every location notification is parsed from scratch. Subscribers are only
// called when the result (the target, or the absence of one) changes.
// Notifications are processed one at a time in arrival order; a subscriber
// may call Navigate.
type Router[T target.Target] struct {
	history History
	parse   target.ParseFunc[T]
	options

	// baseSegments are the decoded segments of the base path; badBase is set
	// when the base cannot be parsed, and then nothing matches.
	baseSegments []string
	badBase      bool

	mu      sync.Mutex
	current T
	matched bool

	subscribers map[int]func(T, bool)
	nextID      int

	pending  []string
	busy     bool
	unlisten func()
}

// NewRouter creates a router parsing the locations of history with parse.
// The current location is parsed immediately.
func NewRouter[T target.Target](history History, parse target.ParseFunc[T], opts ...Option) *Router[T] {
	r := &Router[T]{
		history:     history,
		parse:       parse,
		subscribers: make(map[int]func(T, bool)),
	}
	for _, opt := range opts {
		opt(&r.options)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.baseSegments, r.badBase = splitBase(r.base)
	if r.badBase {
		r.logger.Warn("nav base", "base", r.base)
	}

	r.current, r.matched = r.resolve(history.Location())
	r.unlisten = history.Listen(r.handle)
	return r
}

// Current implements Navigator.
func (r *Router[T]) Current() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.matched
}

// Navigate implements Navigator: it renders t and pushes the location,
// unless the history is already there. The router's state changes when the
// history notifies it.
func (r *Router[T]) Navigate(t T) {
	location := r.Href(t)
	if location == r.history.Location() {
		r.metrics.recordNavigation(false)
		return
	}
	r.logger.Debug("nav push", "location", location)
	r.metrics.recordNavigation(true)
	r.history.Push(location)
}

// Href returns the location of t including the router's base.
func (r *Router[T]) Href(t T) string {
	if r.base == "" {
		return target.Location(t)
	}
	href, err := target.AppendURL(r.base, t)
	if err != nil {
		r.logger.Warn("nav href", "base", r.base, "error", err)
		return target.Location(t)
	}
	return href
}

// Subscribe registers fn to be called after every change of the current
// target. The returned function removes it.
func (r *Router[T]) Subscribe(fn func(t T, ok bool)) (unsubscribe func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.subscribers[id] = fn

	return func() {
		r.mu.Lock()
		delete(r.subscribers, id)
		r.mu.Unlock()
	}
}

// Close stops listening to the history.
func (r *Router[T]) Close() {
	r.mu.Lock()
	unlisten := r.unlisten
	r.unlisten = nil
	r.mu.Unlock()

	if unlisten != nil {
		unlisten()
	}
}

func (r *Router[T]) resolve(location string) (T, bool) {
	start := time.Now()
	t, ok := r.parseBelowBase(location)
	r.metrics.recordLocation(ok, time.Since(start).Seconds())
	return t, ok
}

// parseBelowBase parses location after checking that it starts with the
// base segments.
func (r *Router[T]) parseBelowBase(location string) (T, bool) {
	var zero T
	if r.badBase {
		return zero, false
	}
	segments, query, err := routepath.SplitLocation(location)
	if err != nil {
		return zero, false
	}
	n := len(r.baseSegments)
	if len(segments) < n || !slices.Equal(segments[:n], r.baseSegments) {
		return zero, false
	}
	return r.parse(segments[n:], query)
}

// splitBase returns the decoded path segments of base.
func splitBase(base string) (segments []string, bad bool) {
	if base == "" {
		return nil, false
	}
	u, err := url.Parse(base)
	if err != nil || u.Opaque != "" {
		return nil, true
	}
	segments, err = routepath.SplitPath(u.EscapedPath())
	if err != nil {
		return nil, true
	}
	return segments, false
}

// handle queues location and, unless another call is already draining the
// queue, processes it. If a subscriber panics the router goes idle; the
// locations still queued are processed by the next notification.
func (r *Router[T]) handle(location string) {
	r.mu.Lock()
	r.pending = append(r.pending, location)
	if r.busy {
		r.mu.Unlock()
		return
	}
	r.busy = true

	locked := true
	defer func() {
		if !locked {
			r.mu.Lock()
		}
		r.busy = false
		r.mu.Unlock()
	}()

	for len(r.pending) > 0 {
		location := r.pending[0]
		r.pending = r.pending[1:]
		r.mu.Unlock()
		locked = false

		t, ok := r.resolve(location)

		r.mu.Lock()
		locked = true
		if ok == r.matched && reflect.DeepEqual(t, r.current) {
			continue
		}
		r.current, r.matched = t, ok
		subscribers := r.subscribersLocked()
		r.mu.Unlock()
		locked = false

		r.logger.Debug("nav location changed", "location", location, "matched", ok)
		for _, fn := range subscribers {
			fn(t, ok)
		}

		r.mu.Lock()
		locked = true
	}
}

// subscribersLocked returns the subscribers in registration order.
func (r *Router[T]) subscribersLocked() []func(T, bool) {
	ids := make([]int, 0, len(r.subscribers))
	for id := range r.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fns := make([]func(T, bool), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, r.subscribers[id])
	}
	return fns
}
