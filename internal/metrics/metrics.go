// Package metrics exposes Prometheus counters for the HTTP layer and the
// ingredient pipeline. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mise"

// Metrics handles Prometheus metrics collection
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	ingredientLinesTotal *prometheus.CounterVec
	aggregationsTotal    prometheus.Counter
	aggregatedItems      prometheus.Histogram
	shoppingListsTotal   *prometheus.CounterVec
	recipeScalesTotal    prometheus.Counter
	recipeScaleFactor    prometheus.Histogram
	cacheOperationsTotal *prometheus.CounterVec
	exportsTotal         *prometheus.CounterVec
}

// New creates a collector backed by its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ingredientLinesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingredient_lines_total",
				Help:      "Ingredient lines processed, by whether a quantity was found",
			},
			[]string{"quantified"},
		),
		aggregationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingredient_aggregations_total",
			Help:      "Number of ingredient aggregations performed",
		}),
		aggregatedItems: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingredient_aggregated_items",
			Help:      "Items produced per aggregation",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
		}),
		shoppingListsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "shopping_lists_generated_total",
				Help:      "Shopping lists generated, by source",
			},
			[]string{"source"},
		),
		recipeScalesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recipe_scales_total",
			Help:      "Number of recipe scaling requests",
		}),
		recipeScaleFactor: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recipe_scale_factor",
			Help:      "Applied recipe scale factors",
			Buckets:   []float64{0.25, 0.5, 0.75, 1, 1.5, 2, 3, 5, 10},
		}),
		cacheOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Shopping list cache operations",
			},
			[]string{"operation", "result"},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "shopping_list_exports_total",
				Help:      "Shopping list exports, by result",
			},
			[]string{"result"},
		),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) IngredientLines(quantified, unquantified int) {
	if m == nil {
		return
	}
	m.ingredientLinesTotal.WithLabelValues("yes").Add(float64(quantified))
	m.ingredientLinesTotal.WithLabelValues("no").Add(float64(unquantified))
}

func (m *Metrics) Aggregation(items int) {
	if m == nil {
		return
	}
	m.aggregationsTotal.Inc()
	m.aggregatedItems.Observe(float64(items))
}

func (m *Metrics) ShoppingListGenerated(source string) {
	if m == nil {
		return
	}
	m.shoppingListsTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) RecipeScaled(factor float64) {
	if m == nil {
		return
	}
	m.recipeScalesTotal.Inc()
	m.recipeScaleFactor.Observe(factor)
}

func (m *Metrics) CacheOperation(operation, result string) {
	if m == nil {
		return
	}
	m.cacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) Export(result string) {
	if m == nil {
		return
	}
	m.exportsTotal.WithLabelValues(result).Inc()
}
