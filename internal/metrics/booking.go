package metrics

import (
	"github.com/Freeeeeet/barber_bot/internal/ledger"
	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics - счётчики леджера и диспетчера команд
type BookingMetrics struct {
	claimsTotal   *prometheus.CounterVec
	loadsTotal    *prometheus.CounterVec
	commandsTotal *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		claimsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Subsystem: "ledger",
			Name:      "claims_total",
			Help:      "Slot claim attempts by result",
		}, []string{"result"}),
		loadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Subsystem: "ledger",
			Name:      "loads_total",
			Help:      "Ledger loads from the blob store by result",
		}, []string{"result"}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber",
			Subsystem: "booking",
			Name:      "commands_total",
			Help:      "Dispatched booking commands by kind",
		}, []string{"command"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.claimsTotal, m.loadsTotal, m.commandsTotal)
	return m
}

func (m *BookingMetrics) ObserveClaim(result string) {
	if m == nil {
		return
	}
	m.claimsTotal.WithLabelValues(result).Inc()
}

func (m *BookingMetrics) ObserveLoad(result ledger.LoadResult) {
	if m == nil {
		return
	}
	m.loadsTotal.WithLabelValues(string(result)).Inc()
}

func (m *BookingMetrics) ObserveCommand(command string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(command).Inc()
}
