package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "production_planner"
	// Subsystem for planner engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalPlannerCollector is the singleton planner metrics collector
	// Set by SetGlobalPlannerCollector() when metrics are enabled
	globalPlannerCollector PlannerMetricsRecorder
)

// PlannerMetricsRecorder defines the interface for recording planner metrics
// This interface is used by application code to record metrics
type PlannerMetricsRecorder interface {
	RecordPlanCalculation(status string, duration time.Duration, nodes, edges, uncosted int)
	RecordStage(stage string, duration time.Duration)
	RecordLimitReached(stage string)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalPlannerCollector sets the global planner metrics collector
func SetGlobalPlannerCollector(collector PlannerMetricsRecorder) {
	globalPlannerCollector = collector
}

// RecordPlanCalculation records a plan calculation globally
func RecordPlanCalculation(status string, duration time.Duration, nodes, edges, uncosted int) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordPlanCalculation(status, duration, nodes, edges, uncosted)
	}
}

// RecordPlannerStage records a planner stage duration globally
func RecordPlannerStage(stage string, duration time.Duration) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordStage(stage, duration)
	}
}

// RecordPlannerLimitReached records an iteration limit hit globally
func RecordPlannerLimitReached(stage string) {
	if globalPlannerCollector != nil {
		globalPlannerCollector.RecordLimitReached(stage)
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format, for pickup by the node exporter textfile collector
func WriteTextfile(path string) error {
	if Registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
