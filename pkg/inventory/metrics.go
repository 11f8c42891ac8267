package inventory

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	pipelineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluster_reader_pipeline_duration_seconds",
			Help:    "Time taken to assemble an inventory",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"pipeline"}, // cluster, deployments, namespaces
	)

	pipelineTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluster_reader_pipeline_total",
			Help: "Total number of inventory pipeline runs",
		},
		[]string{"pipeline", "status"}, // success or error
	)

	pipelineRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cluster_reader_pipeline_records",
			Help: "Number of records in the last assembled inventory",
		},
		[]string{"pipeline"},
	)

	// Parse outcome metrics
	nodesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cluster_reader_nodes_dropped_total",
			Help: "Node descriptions that did not match the node grammar",
		},
	)

	fieldsDefaulted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluster_reader_fields_defaulted_total",
			Help: "Record fields that fell back to their default value",
		},
		[]string{"record", "field"},
	)
)

func observeDefaults(record string, fields []string) {
	for _, f := range fields {
		fieldsDefaulted.WithLabelValues(record, f).Inc()
	}
}
