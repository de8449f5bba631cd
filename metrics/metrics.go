// Package metrics exposes training progress as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voievodin/self-organizing-map/som"
)

const namespace = "som"

type Collector struct {
	registry *prometheus.Registry

	Steps           prometheus.Counter
	Radius          prometheus.Gauge
	LearnRate       prometheus.Gauge
	AssignedSamples prometheus.Counter
	UnassignedCells prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_steps_total",
			Help:      "Number of completed training steps.",
		}),
		Radius: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "neighbourhood_radius",
			Help:      "Manhattan radius of the current training step.",
		}),
		LearnRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "learning_rate",
			Help:      "Learning rate of the current training step.",
		}),
		AssignedSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assigned_samples_total",
			Help:      "Samples counted during label assignment.",
		}),
		UnassignedCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unassigned_cells",
			Help:      "Neurons which won no sample.",
		}),
	}
	c.registry.MustRegister(c.Steps, c.Radius, c.LearnRate, c.AssignedSamples, c.UnassignedCells)
	return c
}

// ObserveStep implements som.Observer.
func (c *Collector) ObserveStep(step, steps, radius int, learnRate float64) {
	c.Steps.Inc()
	c.Radius.Set(float64(radius))
	c.LearnRate.Set(learnRate)
}

// ObserveLabels records the outcome of a label assignment pass.
func (c *Collector) ObserveLabels(labels *som.LabelMap) {
	unassigned := 0
	for i := 0; i < labels.Rows(); i++ {
		for j := 0; j < labels.Columns(); j++ {
			tally := labels.Tally(i, j)
			if len(tally) == 0 {
				unassigned++
			}
			for _, count := range tally {
				c.AssignedSamples.Add(float64(count))
			}
		}
	}
	c.UnassignedCells.Set(float64(unassigned))
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
