// Package metrics holds the Prometheus collectors of the CSE. Collectors are
// registered on the default registry the first time anything is recorded.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "acmecse"

// Notification results.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationDropped = "dropped"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total oneM2M HTTP requests.",
		},
		[]string{"method", "status", "rsc"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "oneM2M HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "total",
			Help:      "Subscription notifications by result.",
		},
		[]string{"result"},
	)
	notificationQueue = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "queue_length",
			Help:      "Notifications waiting for a dispatcher worker.",
		},
	)
	expiredResources = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resources",
			Name:      "expired_total",
			Help:      "Resource subtrees removed after their expiration time.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, notifications, notificationQueue, expiredResources)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}

func RecordHTTPRequest(method string, status int, rsc string, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, statusLabel, rsc).Inc()
	httpDuration.WithLabelValues(method, statusLabel).Observe(duration.Seconds())
}

func RecordNotification(result string) {
	RegisterMetrics()
	notifications.WithLabelValues(result).Inc()
}

func SetNotificationQueueLength(n int) {
	RegisterMetrics()
	notificationQueue.Set(float64(n))
}

func RecordExpiredResources(n int) {
	if n <= 0 {
		return
	}
	RegisterMetrics()
	expiredResources.Add(float64(n))
}
