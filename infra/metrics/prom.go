package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/fieldline/dayboard/core/metrics"
)

// PromSink records board events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	jobHours    *prometheus.HistogramVec
	pool        prometheus.Gauge
	utilization *prometheus.GaugeVec
	publishes   prometheus.Counter
}

// NewPromSink registers board metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. If the
// collectors are already registered, the existing ones are reused.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "board_assignments_total",
		Help: "Jobs placed into crew queues by the auto-assignment planner",
	}, []string{"crew_id", "job_type", "zone_match"})
	jobHours := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "board_assigned_job_hours",
		Help:    "Duration of jobs placed by the planner",
		Buckets: []float64{0.5, 1, 2, 3, 4, 6, 8},
	}, []string{"crew_id"})
	pool := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "board_unassigned_jobs",
		Help: "Jobs left in the unassigned pool after the last planner pass",
	})
	utilization := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "board_crew_scheduled_hours",
		Help: "Hours currently scheduled per crew",
	}, []string{"crew_id"})
	publishes := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_publishes_total",
		Help: "Finalized schedule documents written",
	})

	var err error
	if assignments, err = register(reg, assignments); err != nil {
		return nil, err
	}
	if jobHours, err = register(reg, jobHours); err != nil {
		return nil, err
	}
	if pool, err = register(reg, pool); err != nil {
		return nil, err
	}
	if utilization, err = register(reg, utilization); err != nil {
		return nil, err
	}
	if publishes, err = register(reg, publishes); err != nil {
		return nil, err
	}

	return &PromSink{
		assignments: assignments,
		jobHours:    jobHours,
		pool:        pool,
		utilization: utilization,
		publishes:   publishes,
	}, nil
}

// register registers the collector, reusing the already-registered instance
// when one exists so repeated sink construction keeps recording into the
// collectors the registry actually scrapes.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		return are.ExistingCollector.(C), nil
	}
	return c, err
}

// RecordAssignments increments the counter for each placed job.
func (s *PromSink) RecordAssignments(res []coremetrics.AssignmentResult) error {
	for _, r := range res {
		s.assignments.WithLabelValues(r.CrewID, r.JobType, strconv.FormatBool(r.ZoneMatch)).Inc()
		s.jobHours.WithLabelValues(r.CrewID).Observe(r.Hours)
	}
	return nil
}

// RecordPublish counts a finalized document write.
func (s *PromSink) RecordPublish(coremetrics.PublishEvent) error {
	s.publishes.Inc()
	return nil
}

// RecordPoolSize sets the unassigned pool gauge.
func (s *PromSink) RecordPoolSize(size int) error {
	s.pool.Set(float64(size))
	return nil
}

// RecordUtilization sets the scheduled-hours gauge for a crew.
func (s *PromSink) RecordUtilization(crewID string, scheduled, capacity float64) error {
	s.utilization.WithLabelValues(crewID).Set(scheduled)
	return nil
}
