package adapters

import (
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"

	"gen-machineconf/internal/ports"
	"gen-machineconf/internal/types"
)

const metricsNamespace = "gen_machineconf"

// MetricsAdapter counts resolution activity on a private registry and
// writes it in the node-exporter textfile format.
type MetricsAdapter struct {
	// Path is the textfile target; Flush is a no-op when empty.
	Path string

	unitsResolved   *prometheus.CounterVec
	toolInvocations *prometheus.CounterVec
	cacheChecks     *prometheus.CounterVec

	registry *prometheus.Registry
}

func NewMetricsAdapter(path string) *MetricsAdapter {
	registry := prometheus.NewRegistry()
	m := &MetricsAdapter{
		Path:     path,
		registry: registry,
		unitsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "units_resolved_total",
				Help:      "Build units recorded by resolution passes",
			},
			[]string{"stack", "flavor", "generated"},
		),
		toolInvocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "tool_invocations_total",
				Help:      "External tool invocations",
			},
			[]string{"tool", "result"},
		),
		cacheChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "cache_checks_total",
				Help:      "Digest store checks by key and outcome",
			},
			[]string{"key", "status"},
		),
	}
	registry.MustRegister(m.unitsResolved, m.toolInvocations, m.cacheChecks)
	return m
}

func (m *MetricsAdapter) UnitResolved(unit types.BuildUnit, generated bool) {
	m.unitsResolved.WithLabelValues(string(unit.Stack), string(unit.Flavor), strconv.FormatBool(generated)).Inc()
}

func (m *MetricsAdapter) ToolInvoked(tool string, failed bool) {
	result := "ok"
	if failed {
		result = "failed"
	}
	m.toolInvocations.WithLabelValues(tool, result).Inc()
}

func (m *MetricsAdapter) CacheChecked(key string, status types.CacheStatus) {
	m.cacheChecks.WithLabelValues(key, string(status)).Inc()
}

func (m *MetricsAdapter) Flush() error {
	if m.Path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(m.Path, m.registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write metrics textfile").
			WithCause(err)
	}
	return nil
}

// Registry exposes the collectors for inspection.
func (m *MetricsAdapter) Registry() *prometheus.Registry {
	return m.registry
}

var _ ports.MetricsPort = (*MetricsAdapter)(nil)
