package metrics

import "github.com/prometheus/client_golang/prometheus"

// InventoryMetrics tracks applied stock operations and current unit totals.
type InventoryMetrics struct {
	operations *prometheus.CounterVec
	units      *prometheus.GaugeVec
	exports    *prometheus.CounterVec
}

// NewInventoryMetrics registers the inventory metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_operations_total",
		Help: "Applied inventory operations by kind.",
	}, []string{"op"})
	units := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "inventory_units",
		Help: "Units currently held, split into master and available pools.",
	}, []string{"pool"})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_report_exports_total",
		Help: "Monthly report exports by format.",
	}, []string{"format"})
	reg.MustRegister(operations, units, exports)
	return &InventoryMetrics{
		operations: operations,
		units:      units,
		exports:    exports,
	}
}

func (m *InventoryMetrics) IncOperation(op string) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(op)).Inc()
}

// SetUnits publishes the store-wide master and available totals.
func (m *InventoryMetrics) SetUnits(master, available int) {
	if m == nil || m.units == nil {
		return
	}
	m.units.WithLabelValues("master").Set(float64(master))
	m.units.WithLabelValues("available").Set(float64(available))
}

func (m *InventoryMetrics) IncExport(format string) {
	if m == nil || m.exports == nil {
		return
	}
	m.exports.WithLabelValues(normalizeLabel(format)).Inc()
}
