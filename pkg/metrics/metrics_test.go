package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegistry(t *testing.T) {
	if Registry == nil {
		t.Error("Registry should not be nil")
	}

	if Registry != prometheus.DefaultRegisterer {
		t.Error("Registry should be the default Prometheus registerer")
	}
}

func TestTotals(t *testing.T) {
	reg := prometheus.NewRegistry()

	loads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arcivia_test_loads_total",
		Help: "test",
	}, []string{"outcome"})
	other := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "unrelated_total",
		Help: "test",
	})
	streak := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "arcivia_test_streak",
		Help: "test",
	})
	reg.MustRegister(loads, other, streak)

	loads.WithLabelValues("ok").Add(3)
	loads.WithLabelValues("error").Inc()
	other.Inc()
	streak.Set(2)

	totals, err := Totals(reg)
	if err != nil {
		t.Fatalf("Totals() error = %v", err)
	}

	if len(totals) != 1 {
		t.Fatalf("Totals() = %+v, want only the arcivia counter", totals)
	}
	if totals[0].Name != "arcivia_test_loads_total" || totals[0].Value != 4 {
		t.Errorf("Totals()[0] = %+v, want arcivia_test_loads_total=4", totals[0])
	}
}

func TestHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("exposition missing default collectors")
	}
}
