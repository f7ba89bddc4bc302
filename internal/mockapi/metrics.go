package mockapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"BoutiqueAdmin/pkg/kit"
)

// Metrics counts responses synthesized by the mock route table.
type Metrics struct {
	Served *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	served := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mock_responses_total",
			Help: "Responses served by the mock backend",
		},
		[]string{"method", "route", "status"},
	)

	if err := reg.Register(served); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
		served = are.ExistingCollector.(*prometheus.CounterVec)
	}
	return &Metrics{Served: served}
}

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.Served.WithLabelValues(r.Method, kit.RoutePatternOrPath(r), strconv.Itoa(status)).Inc()
	})
}
