package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var verificationResults = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "certificate_verifications_total",
		Help: "Certificate verification outcomes by method and result",
	},
	[]string{"method", "result"},
)
