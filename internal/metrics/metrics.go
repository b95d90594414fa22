// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Uploads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skytake",
		Name:      "uploads_total",
		Help:      "File uploads by outcome (ok, bad_request, invalid_filename, storage_failure, unknown).",
	}, []string{"result"})
	UploadBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "skytake",
		Name:      "upload_bytes_total",
		Help:      "Bytes successfully written to object storage.",
	})
	UploadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "skytake",
		Name:      "upload_duration_seconds",
		Help:      "Time spent in the object storage gateway per upload.",
		Buckets:   prometheus.DefBuckets,
	})
	BucketsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "skytake",
		Name:      "bucket_created_total",
		Help:      "Buckets created lazily on first upload.",
	})
)

// Init registers collectors; call once from main.
func Init() {
	prometheus.MustRegister(Uploads, UploadBytes, UploadDuration, BucketsCreated)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
