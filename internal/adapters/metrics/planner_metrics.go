package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PlannerMetricsCollector handles production plan calculation metrics
type PlannerMetricsCollector struct {
	// Calculation metrics
	calculationDuration *prometheus.HistogramVec
	calculationsTotal   *prometheus.CounterVec

	// Per-stage metrics
	stageDuration *prometheus.HistogramVec
	limitsReached *prometheus.CounterVec

	// Shape of the last successful plan
	planNodes    prometheus.Gauge
	planEdges    prometheus.Gauge
	planUncosted prometheus.Gauge
}

// NewPlannerMetricsCollector creates a new planner metrics collector
func NewPlannerMetricsCollector() *PlannerMetricsCollector {
	return &PlannerMetricsCollector{
		calculationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "calculation_duration_seconds",
				Help:      "Plan calculation duration distribution",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
			},
			[]string{"status"},
		),

		calculationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "calculations_total",
				Help:      "Total number of plan calculations by status",
			},
			[]string{"status"},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stage_duration_seconds",
				Help:      "Duration of each planner stage (expand, prune, cost, simplify)",
				Buckets:   []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"stage"},
		),

		limitsReached: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "limits_reached_total",
				Help:      "Number of calculations truncated by an iteration limit, by stage",
			},
			[]string{"stage"},
		),

		planNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plan_nodes",
			Help:      "Number of nodes in the last calculated plan",
		}),

		planEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plan_edges",
			Help:      "Number of edges in the last calculated plan",
		}),

		planUncosted: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "plan_uncosted_nodes",
			Help:      "Number of nodes without a known cost in the last calculated plan",
		}),
	}
}

// Register registers all planner metrics with the Prometheus registry
func (c *PlannerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.calculationDuration,
		c.calculationsTotal,
		c.stageDuration,
		c.limitsReached,
		c.planNodes,
		c.planEdges,
		c.planUncosted,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordPlanCalculation records a finished calculation. Plan shape gauges are
// only updated for successful runs.
func (c *PlannerMetricsCollector) RecordPlanCalculation(status string, duration time.Duration, nodes, edges, uncosted int) {
	c.calculationDuration.WithLabelValues(status).Observe(duration.Seconds())
	c.calculationsTotal.WithLabelValues(status).Inc()

	if status == "success" {
		c.planNodes.Set(float64(nodes))
		c.planEdges.Set(float64(edges))
		c.planUncosted.Set(float64(uncosted))
	}
}

// RecordStage records the duration of one planner stage
func (c *PlannerMetricsCollector) RecordStage(stage string, duration time.Duration) {
	c.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordLimitReached records a stage stopping at its iteration limit
func (c *PlannerMetricsCollector) RecordLimitReached(stage string) {
	c.limitsReached.WithLabelValues(stage).Inc()
}
