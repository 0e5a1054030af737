package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var bulkRows = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "console",
	Name:      "bulk_rows_total",
	Help:      "Rows processed by bulk imports by entity and outcome.",
}, []string{"entity", "outcome"})
