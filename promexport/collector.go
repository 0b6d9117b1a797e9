// Package promexport exposes benchmark statistics as Prometheus metrics.
// The collector reads only committed rows through the benchkit query
// surface, so it can be scraped while a measurement loop is running.
package promexport

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MeKo-Tech/benchkit"
)

var (
	samplesDesc = prometheus.NewDesc(
		"benchkit_samples_total",
		"Number of committed benchmark samples.",
		[]string{"benchmark"}, nil,
	)

	durationDesc = prometheus.NewDesc(
		"benchkit_duration_seconds",
		"Duration statistics over committed samples.",
		[]string{"benchmark", "stat"}, nil,
	)

	counterDesc = prometheus.NewDesc(
		"benchkit_counter",
		"Counter statistics over committed samples.",
		[]string{"benchmark", "counter", "stat"}, nil,
	)
)

// Collector implements prometheus.Collector for one Benchmark.
type Collector struct {
	b *benchkit.Benchmark
}

// NewCollector creates a collector for b.
func NewCollector(b *benchkit.Benchmark) *Collector {
	return &Collector{b: b}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- samplesDesc
	ch <- durationDesc
	ch <- counterDesc
}

// Collect implements prometheus.Collector. A benchmark with an empty store
// reports only its sample count; statistics appear once rows exist.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	name := c.b.Name()
	ch <- prometheus.MustNewConstMetric(samplesDesc, prometheus.GaugeValue,
		float64(c.b.Len()), name)

	mean, err := c.b.Mean()
	if err != nil {
		return
	}
	low, high, err := c.b.PercentileRange()
	if err != nil {
		return
	}

	ch <- prometheus.MustNewConstMetric(durationDesc, prometheus.GaugeValue,
		mean.Seconds(), name, "mean")
	ch <- prometheus.MustNewConstMetric(durationDesc, prometheus.GaugeValue,
		low.Seconds(), name, "p2.5")
	ch <- prometheus.MustNewConstMetric(durationDesc, prometheus.GaugeValue,
		high.Seconds(), name, "p97.5")

	for _, counter := range c.b.Counters() {
		cm, err := c.b.CounterMean(counter)
		if err != nil {
			continue
		}
		clow, err := c.b.CounterPercentile(counter, 2.5)
		if err != nil {
			continue
		}
		chigh, err := c.b.CounterPercentile(counter, 97.5)
		if err != nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(counterDesc, prometheus.GaugeValue,
			cm, name, counter, "mean")
		ch <- prometheus.MustNewConstMetric(counterDesc, prometheus.GaugeValue,
			clow, name, counter, "p2.5")
		ch <- prometheus.MustNewConstMetric(counterDesc, prometheus.GaugeValue,
			chigh, name, counter, "p97.5")
	}
}
