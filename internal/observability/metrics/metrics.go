package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

// Metrics holds the process-level counters. The registry is provided alongside
// so the HTTP layer can expose it and tests can use an isolated instance.
type Metrics struct {
	ProcesoRuns           *prometheus.CounterVec
	ServiciosGenerados    prometheus.Counter
	RecordatoriosEnviados prometheus.Counter
	RecordatoriosFallidos prometheus.Counter
	ErroresProceso        prometheus.Counter
}

func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ProcesoRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cobranza",
			Name:      "proceso_runs_total",
			Help:      "Automation runs by final state.",
		}, []string{"estado"}),
		ServiciosGenerados: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cobranza",
			Name:      "servicios_generados_total",
			Help:      "Monthly service rows generated by the automation.",
		}),
		RecordatoriosEnviados: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cobranza",
			Name:      "recordatorios_enviados_total",
			Help:      "Payment reminders delivered on any channel.",
		}),
		RecordatoriosFallidos: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cobranza",
			Name:      "recordatorios_fallidos_total",
			Help:      "Payment reminders that failed on every channel.",
		}),
		ErroresProceso: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "cobranza",
			Name:      "proceso_errores_total",
			Help:      "Errors recorded in automation run logs.",
		}),
	}
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

var Module = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		New,
	),
)
