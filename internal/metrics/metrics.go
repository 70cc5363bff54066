package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// * HTTPRequestDuration tracks request latency by route template, method and status
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commit_risk_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method", "status"})

	// * AssessmentsRecorded counts stored assessments by model version and level
	AssessmentsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commit_risk_assessments_recorded_total",
		Help: "Total risk assessments recorded",
	}, []string{"model_version", "risk_level"})

	// * CommitsIngested counts commits upserted by a repository sync
	CommitsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commit_risk_commits_ingested_total",
		Help: "Total commits upserted during repository sync",
	})

	// * UpstreamErrors counts ingestion adapter failures by reason
	UpstreamErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commit_risk_upstream_errors_total",
		Help: "Total version-control API failures by reason",
	}, []string{"reason"})

	// * JobsProcessed counts analysis jobs consumed from the queue by outcome
	JobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commit_risk_analysis_jobs_total",
		Help: "Total analysis jobs processed from the queue",
	}, []string{"result"})
)
