package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "comunidad_http_requests_total",
	Help: "The total number of handled requests by route, method and status code",
}, []string{"route", "method", "status"})

var httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "comunidad_http_request_duration_seconds",
	Help:    "Duration of handled requests by route",
	Buckets: prometheus.DefBuckets,
}, []string{"route"})

var participantsRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "comunidad_participants_registered_total",
	Help: "Number of successful participant registrations (inserts and re-registrations)",
})

var needsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "comunidad_needs_created_total",
	Help: "Number of needs created by question id",
}, []string{"question_id"})

var categoryResolutionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "comunidad_category_resolution_total",
	Help: "Outcome of resolving the category slug of a submitted need",
}, []string{"outcome"})

const (
	resolutionBound    = "bound"
	resolutionNone     = "none"
	resolutionIgnored  = "ignored_unknown"
	resolutionMissing  = "required_missing"
	resolutionRejected = "rejected_unknown"
)

func instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(rw, r)

		httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(rw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(started).Seconds())
	}
}
