// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodgram_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "foodgram_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Domain
	RecipeWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_recipe_writes_total",
			Help: "Recipe create/update/delete operations that committed",
		},
		[]string{"operation"},
	)

	MembershipChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_membership_changes_total",
			Help: "Favorite and shopping cart membership changes",
		},
		[]string{"set", "operation"},
	)

	ShoppingListDownloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_downloads_total",
			Help: "Shopping list downloads by format",
		},
		[]string{"format"},
	)

	ShoppingListItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "foodgram_shopping_list_items",
			Help:    "Number of merged items per downloaded shopping list",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	IngredientSearchCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_ingredient_search_cache_total",
			Help: "Ingredient search cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackInFlight(started bool) {
	if started {
		HTTPRequestsInFlight.Inc()
		return
	}
	HTTPRequestsInFlight.Dec()
}

func RecordRecipeWrite(operation string) {
	RecipeWrites.WithLabelValues(operation).Inc()
}

func RecordMembershipChange(set, operation string) {
	MembershipChanges.WithLabelValues(set, operation).Inc()
}

func RecordShoppingListDownload(format string, items int) {
	ShoppingListDownloads.WithLabelValues(format).Inc()
	ShoppingListItems.Observe(float64(items))
}

func RecordIngredientCache(hit bool) {
	if hit {
		IngredientSearchCache.WithLabelValues("hit").Inc()
		return
	}
	IngredientSearchCache.WithLabelValues("miss").Inc()
}
