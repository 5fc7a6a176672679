package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	Subscribes        prometheus.Counter
	Unsubscribes      prometheus.Counter
	ActiveSubscribers prometheus.Gauge
	NewslettersSent   prometheus.Counter
	DeliverySuccesses prometheus.Counter
	DeliveryFailures  prometheus.Counter
	SendDuration      prometheus.Histogram
	ContentViews      *prometheus.CounterVec
}

// New creates new Prometheus metrics on the default registry
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates new Prometheus metrics on the given registry
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Subscribes: factory.NewCounter(prometheus.CounterOpts{
			Name: "site_newsletter_subscribes_total",
			Help: "Total number of successful subscribe calls",
		}),
		Unsubscribes: factory.NewCounter(prometheus.CounterOpts{
			Name: "site_newsletter_unsubscribes_total",
			Help: "Total number of successful unsubscribe calls",
		}),
		ActiveSubscribers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "site_newsletter_active_subscribers",
			Help: "Number of currently active subscribers",
		}),
		NewslettersSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "site_newsletters_sent_total",
			Help: "Total number of newsletters that completed a send",
		}),
		DeliverySuccesses: factory.NewCounter(prometheus.CounterOpts{
			Name: "site_newsletter_delivery_successes_total",
			Help: "Total number of successful per-recipient deliveries",
		}),
		DeliveryFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "site_newsletter_delivery_failures_total",
			Help: "Total number of failed per-recipient deliveries",
		}),
		SendDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "site_newsletter_send_duration_seconds",
			Help:    "Time spent fanning out a newsletter send",
			Buckets: prometheus.DefBuckets,
		}),
		ContentViews: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "site_content_views_total",
			Help: "Total number of counted views of published content",
		}, []string{"type"}),
	}
}
