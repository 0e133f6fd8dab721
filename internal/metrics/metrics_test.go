package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.SessionsRegistered.Inc()
	m.ForwardOpens.Inc()
	m.ReadsServed.WithLabelValues("ok").Inc()
	m.ProtocolErrors.WithLabelValues("BAD_PARAM").Inc()

	var metric dto.Metric
	if err := m.SessionsRegistered.Write(&metric); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if metric.GetCounter().GetValue() != 1 {
		t.Fatalf("SessionsRegistered = %v, want 1", metric.GetCounter().GetValue())
	}
}

func TestHealthzEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	mux := NewMux(reg)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestMetricsEndpointServesExposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SessionsRegistered.Inc()
	mux := NewMux(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
