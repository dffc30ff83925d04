package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and gauges for the content service.
type Metrics struct {
	StoreQueries *prometheus.CounterVec // labels: table, outcome={success,error}

	FrontPageBuilds    prometheus.Counter
	FrontPageFallbacks prometheus.Counter
	FrontPageCache     *prometheus.CounterVec // labels: result={hit,miss,bypass}

	CommunityLookups *prometheus.CounterVec // labels: outcome={found,not_found}

	PublishEvents  *prometheus.CounterVec // labels: outcome={success,error,disabled}
	EventsEnabled  prometheus.Gauge
	WeatherReports prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.StoreQueries,
		m.FrontPageBuilds,
		m.FrontPageFallbacks,
		m.FrontPageCache,
		m.CommunityLookups,
		m.PublishEvents,
		m.EventsEnabled,
		m.WeatherReports,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		StoreQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "akfeed",
			Name:      "store_queries_total",
			Help:      "Content store queries by table and outcome.",
		}, []string{"table", "outcome"}),
		FrontPageBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "akfeed",
			Name:      "front_page_builds_total",
			Help:      "Front page categorization runs.",
		}),
		FrontPageFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "akfeed",
			Name:      "front_page_fallbacks_total",
			Help:      "Front page builds served entirely from sample data after a store failure.",
		}),
		FrontPageCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "akfeed",
			Name:      "front_page_cache_total",
			Help:      "Front page cache lookups by result.",
		}, []string{"result"}),
		CommunityLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "akfeed",
			Name:      "community_lookups_total",
			Help:      "Community slug resolutions by outcome.",
		}, []string{"outcome"}),
		PublishEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "akfeed",
			Name:      "publish_events_total",
			Help:      "News publish notifications by outcome.",
		}, []string{"outcome"}),
		EventsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "akfeed",
			Name:      "publish_events_enabled",
			Help:      "1 when the publish event stream is enabled, 0 otherwise.",
		}),
		WeatherReports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "akfeed",
			Name:      "weather_reports_total",
			Help:      "Synthetic weather readings generated.",
		}),
	}
}
