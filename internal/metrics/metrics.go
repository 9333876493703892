// Package metrics keeps Prometheus gauges and counters for the roster and the
// ledger. There is no HTTP listener; values are written to a node-exporter
// textfile after each mutation when a path is configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const namespace = "team_tracker"

// Recorder is safe to use as a nil pointer; every method is then a no-op.
type Recorder struct {
	registry        *prometheus.Registry
	personnel       *prometheus.GaugeVec
	leaves          prometheus.Gauge
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	sweepExpired    prometheus.Counter
	textfile        string
}

func NewRecorder(textfile string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		personnel: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "personnel",
			Help:      "Persons in the working set by status.",
		}, []string{"status"}),
		leaves: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "leaves",
			Help:      "Leave and absence records in the ledger.",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Mutating operations by kind.",
		}, []string{"op"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Failed slot writes.",
		}, []string{"slot"}),
		sweepExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_expired_total",
			Help:      "Persons returned to active by the expiry sweep.",
		}),
		textfile: textfile,
	}

	r.registry.MustRegister(r.personnel, r.leaves, r.mutations, r.persistFailures, r.sweepExpired)
	return r
}

func (r *Recorder) SetPersonnel(status string, count int) {
	if r == nil {
		return
	}
	r.personnel.WithLabelValues(status).Set(float64(count))
}

func (r *Recorder) SetLeaves(count int) {
	if r == nil {
		return
	}
	r.leaves.Set(float64(count))
}

func (r *Recorder) IncMutation(op string) {
	if r == nil {
		return
	}
	r.mutations.WithLabelValues(op).Inc()
}

func (r *Recorder) IncPersistFailure(slot string) {
	if r == nil {
		return
	}
	r.persistFailures.WithLabelValues(slot).Inc()
}

func (r *Recorder) AddSweepExpired(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.sweepExpired.Add(float64(n))
}

// Flush writes the registry to the textfile. Without a path it does nothing.
func (r *Recorder) Flush() error {
	if r == nil || r.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		logrus.WithError(err).WithField("path", r.textfile).Warn("Failed to write metrics textfile")
		return err
	}
	return nil
}
