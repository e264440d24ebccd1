// Package metrics exposes prometheus counters for editor activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the editor counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	mutations       *prometheus.CounterVec
	historyMoves    *prometheus.CounterVec
	saves           *prometheus.CounterVec
	executionEvents *prometheus.CounterVec
}

// New creates the counters on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planeditor_graph_mutations_total",
				Help: "Structural graph mutations by operation",
			},
			[]string{"operation"},
		),
		historyMoves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planeditor_history_moves_total",
				Help: "Undo and redo requests that changed the graph",
			},
			[]string{"direction"},
		),
		saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planeditor_plan_saves_total",
				Help: "Plan save attempts by outcome",
			},
			[]string{"outcome"},
		),
		executionEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planeditor_execution_events_total",
				Help: "Execution events applied to the execution store",
			},
			[]string{"event_type"},
		),
	}

	m.registry.MustRegister(m.mutations, m.historyMoves, m.saves, m.executionEvents)

	return m
}

// Mutation counts one structural graph change.
func (m *Metrics) Mutation(operation string) {
	if m == nil {
		return
	}

	m.mutations.WithLabelValues(operation).Inc()
}

// HistoryMove counts one effective undo or redo.
func (m *Metrics) HistoryMove(direction string) {
	if m == nil {
		return
	}

	m.historyMoves.WithLabelValues(direction).Inc()
}

// Save counts one save attempt.
func (m *Metrics) Save(success bool) {
	if m == nil {
		return
	}

	outcome := "success"
	if !success {
		outcome = "failure"
	}

	m.saves.WithLabelValues(outcome).Inc()
}

// ExecutionEvent counts one applied execution event.
func (m *Metrics) ExecutionEvent(eventType string) {
	if m == nil {
		return
	}

	m.executionEvents.WithLabelValues(eventType).Inc()
}

// Registry returns the registry the counters live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
