package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics holds the gateway's Prometheus metrics.
type PrometheusMetrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CatalogQueriesTotal   *prometheus.CounterVec
	CatalogQueryDuration  *prometheus.HistogramVec
	CatalogItemsReturned  *prometheus.CounterVec
	CatalogWindowsPlanned *prometheus.HistogramVec

	ConnectionPoolActive *prometheus.GaugeVec
	ConnectionPoolIdle   *prometheus.GaugeVec

	DataSourceUp *prometheus.GaugeVec
}

var metrics *PrometheusMetrics

// InitMetrics registers all metrics with the default registry. Call once
// at startup.
func InitMetrics() {
	metrics = &PrometheusMetrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_gateway_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_gateway_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		CatalogQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_gateway_catalog_queries_total",
				Help: "Total number of catalog operations",
			},
			[]string{"database", "database_type", "operation", "status"},
		),
		CatalogQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_gateway_catalog_query_duration_seconds",
				Help:    "Catalog operation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"database", "database_type", "operation"},
		),
		CatalogItemsReturned: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_gateway_catalog_items_returned_total",
				Help: "Total number of catalog items returned",
			},
			[]string{"database", "database_type", "operation"},
		),
		CatalogWindowsPlanned: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_gateway_catalog_windows_planned",
				Help:    "Per-category windows planned for one describe page",
				Buckets: []float64{0, 1, 2, 3},
			},
			[]string{"database", "database_type"},
		),
		ConnectionPoolActive: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_gateway_connection_pool_active",
				Help: "Active connections per data source",
			},
			[]string{"database", "database_type"},
		),
		ConnectionPoolIdle: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_gateway_connection_pool_idle",
				Help: "Idle connections per data source",
			},
			[]string{"database", "database_type"},
		),
		DataSourceUp: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_gateway_datasource_up",
				Help: "Whether the data source is reachable (1=up, 0=down)",
			},
			[]string{"database", "database_type"},
		),
	}
}

// GetMetrics returns the initialized metrics, nil before InitMetrics.
func GetMetrics() *PrometheusMetrics {
	return metrics
}

// PrometheusMiddleware records HTTP request metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}

		metrics.HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}

// RecordCatalogQuery records one catalog operation outcome.
func RecordCatalogQuery(database, databaseType, operation, status string, duration time.Duration, items int) {
	if metrics == nil {
		return
	}

	metrics.CatalogQueriesTotal.WithLabelValues(database, databaseType, operation, status).Inc()
	metrics.CatalogQueryDuration.WithLabelValues(database, databaseType, operation).Observe(duration.Seconds())
	if items > 0 {
		metrics.CatalogItemsReturned.WithLabelValues(database, databaseType, operation).Add(float64(items))
	}
}

// RecordWindowsPlanned records the window count of one describe page.
func RecordWindowsPlanned(database, databaseType string, windows int) {
	if metrics == nil {
		return
	}
	metrics.CatalogWindowsPlanned.WithLabelValues(database, databaseType).Observe(float64(windows))
}

// UpdateConnectionPoolMetrics publishes pool gauges for one data source.
func UpdateConnectionPoolMetrics(database, databaseType string, active, idle int) {
	if metrics == nil {
		return
	}
	metrics.ConnectionPoolActive.WithLabelValues(database, databaseType).Set(float64(active))
	metrics.ConnectionPoolIdle.WithLabelValues(database, databaseType).Set(float64(idle))
}

// UpdateDataSourceUp publishes reachability for one data source.
func UpdateDataSourceUp(database, databaseType string, up bool) {
	if metrics == nil {
		return
	}
	v := 0.0
	if up {
		v = 1.0
	}
	metrics.DataSourceUp.WithLabelValues(database, databaseType).Set(v)
}
