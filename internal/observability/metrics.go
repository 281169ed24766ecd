package observability

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jpchat_turns_total",
			Help: "Total de turnos processados, por estágio resultante",
		},
		[]string{"stage"},
	)

	LocalityResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jpchat_locality_resolutions_total",
			Help: "Resoluções de cidade, por método (unresolved quando não encontrada)",
		},
		[]string{"outcome"},
	)

	LeadsFinalizedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jpchat_leads_finalized_total",
			Help: "Total de leads finalizados",
		},
	)

	PersistenceFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jpchat_persistence_failures_total",
			Help: "Falhas de persistência, por operação",
		},
		[]string{"op"},
	)

	AssistantRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jpchat_assistant_requests_total",
			Help: "Chamadas ao assistente, por status",
		},
		[]string{"status"},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		TurnsTotal,
		LocalityResolutionsTotal,
		LeadsFinalizedTotal,
		PersistenceFailuresTotal,
		AssistantRequestsTotal,
	}
}

// Register adds every jpchat collector to reg. Collectors already present are ignored.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Start registers the collectors on the default registry and serves /metrics on port.
func Start(port string) *http.Server {
	if err := Register(prometheus.DefaultRegisterer); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux}
	go srv.ListenAndServe()
	return srv
}
