package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	DealsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "escrow_deals_created_total",
		Help: "Deals created through the offer wizard.",
	})

	DealsSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "escrow_deals_settled_total",
		Help: "Deals settled, first settlement only.",
	})

	DealsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "escrow_deals_expired_total",
		Help: "Unsettled deals evicted by the expiry sweeper.",
	})

	WizardSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "escrow_wizard_sessions_active",
		Help: "Offer wizard sessions currently in progress.",
	})
)
