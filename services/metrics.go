package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	materializedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "conferences_materialized_total",
		Help: "Total number of external feed candidates promoted to owned conferences.",
	})
	notificationsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_fanned_out_total",
		Help: "Total number of notification rows created by fan-out.",
	})
)

func init() {
	prometheus.MustRegister(materializedCounter, notificationsCounter)
}
