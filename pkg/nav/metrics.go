package nav

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the router metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "nestroute").
	Namespace string

	// Subsystem is the metrics subsystem (default: "nav").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for location resolution.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the router metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "nestroute",
		Subsystem: "nav",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics are the Prometheus metrics of one or more routers.
//
// Collected:
//   - nestroute_nav_location_changes_total{result="matched|not_found"}
//   - nestroute_nav_navigations_total{result="pushed|unchanged"}
//   - nestroute_nav_resolve_duration_seconds
//
// A nil *Metrics records nothing.
type Metrics struct {
	locationChanges *prometheus.CounterVec
	navigations     *prometheus.CounterVec
	resolveDuration prometheus.Histogram
}

// NewMetrics registers the router metrics.
//
// Example:
//
//	m := nav.NewMetrics(nav.WithRegistry(reg))
//	r := nav.NewRouter(h, pages.ParsePage, nav.WithMetrics(m))
//
//	http.Handle("/metrics", promhttp.Handler())
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		locationChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "location_changes_total",
			Help:        "Locations parsed by routers, by whether a target matched",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Navigate calls, by whether a location was pushed",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		resolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_duration_seconds",
			Help:        "Time spent parsing a location into a target",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (m *Metrics) recordLocation(matched bool, seconds float64) {
	if m == nil {
		return
	}
	result := "matched"
	if !matched {
		result = "not_found"
	}
	m.locationChanges.WithLabelValues(result).Inc()
	m.resolveDuration.Observe(seconds)
}

func (m *Metrics) recordNavigation(pushed bool) {
	if m == nil {
		return
	}
	result := "pushed"
	if !pushed {
		result = "unchanged"
	}
	m.navigations.WithLabelValues(result).Inc()
}
