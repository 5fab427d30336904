package rest

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/supermercado-admin/internal/domain"
)

// Métricas de la capa REST. El resultado se etiqueta con "ok" o con la
// familia de error (server-error, network-error, request-error, unauthorized).
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_api_requests_total",
		Help: "Peticiones emitidas al backend, por método y resultado",
	}, []string{"method", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_api_request_duration_seconds",
		Help:    "Duración de las peticiones al backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

func observeRequest(method string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = outcomeFor(err)
	}
	requestsTotal.WithLabelValues(method, outcome).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func outcomeFor(err error) string {
	if errors.Is(err, domain.ErrUnauthorized) {
		return "unauthorized"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return string(apiErr.Kind)
	}
	return "error"
}
