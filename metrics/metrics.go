// Package metrics registers the bot's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the collectors updated by the engine and the API server.
type Metrics struct {
	TicksTotal   prometheus.Counter
	OpensTotal   *prometheus.CounterVec // labels: direction
	ClosesTotal  *prometheus.CounterVec // labels: direction, reason
	Balance      prometheus.Gauge
	Equity       prometheus.Gauge
	TickDuration prometheus.Histogram
	WSClients    prometheus.Gauge
}

// New registers all collectors on reg and returns them.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simbot_ticks_total",
			Help: "Simulation ticks processed",
		}),
		OpensTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simbot_opens_total",
			Help: "Positions opened, by direction",
		}, []string{"direction"}),
		ClosesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simbot_closes_total",
			Help: "Positions closed, by direction and close reason",
		}, []string{"direction", "reason"}),
		Balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simbot_balance",
			Help: "Current account balance",
		}),
		Equity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simbot_equity",
			Help: "Balance plus open stake and unrealized profit",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "simbot_tick_duration_seconds",
			Help:    "Wall time spent computing a tick",
			Buckets: []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001},
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simbot_ws_clients",
			Help: "Connected websocket clients",
		}),
	}

	reg.MustRegister(
		m.TicksTotal,
		m.OpensTotal,
		m.ClosesTotal,
		m.Balance,
		m.Equity,
		m.TickDuration,
		m.WSClients,
	)
	return m
}
