// Package metrics is the Prometheus registry the simulator reports
// protocol activity through: sessions registered, forward opens, reads
// served by status, fragmented replies, and protocol errors by taxonomy
// code. Every counter is safe for concurrent increment by construction,
// which is what lets the metrics HTTP listener run on its own goroutine
// without touching session state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registered collectors. Construct once at startup with
// New and share the result across the accept loop and every connection.
type Metrics struct {
	SessionsRegistered prometheus.Counter
	ForwardOpens       prometheus.Counter
	ForwardCloses      prometheus.Counter
	ReadsServed        *prometheus.CounterVec // labeled by status: "ok", "fragmented", "unknown_tag"
	ProtocolErrors     *prometheus.CounterVec // labeled by taxonomy code name
}

// New registers the simulator's collectors against reg and returns the
// handle used to increment them.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "logixsim_sessions_registered_total",
			Help: "Register Session requests accepted.",
		}),
		ForwardOpens: factory.NewCounter(prometheus.CounterOpts{
			Name: "logixsim_forward_opens_total",
			Help: "Forward Open requests accepted.",
		}),
		ForwardCloses: factory.NewCounter(prometheus.CounterOpts{
			Name: "logixsim_forward_closes_total",
			Help: "Forward Close requests accepted.",
		}),
		ReadsServed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "logixsim_reads_served_total",
			Help: "Read Tag / Read Tag Fragmented replies, by outcome.",
		}, []string{"status"}),
		ProtocolErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "logixsim_protocol_errors_total",
			Help: "Terminal connection errors, by taxonomy code.",
		}, []string{"code"}),
	}
}
