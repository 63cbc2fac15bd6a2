package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "path_tracer"

// Collector counts recorder and path store activity.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	samplesWritten prometheus.Counter
	samplesDropped prometheus.Counter
	filesLoaded    prometheus.Counter
	filesSkipped   prometheus.Counter
	linesSkipped   prometheus.Counter
	samplesAdded   prometheus.Counter
	querySamples   prometheus.Counter
}

// NewCollector creates a Collector registered on its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		samplesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recorder",
			Name:      "samples_written_total",
			Help:      "Records appended to session files, header included.",
		}),
		samplesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "recorder",
			Name:      "samples_dropped_total",
			Help:      "Records lost because the session file could not be written.",
		}),
		filesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "files_loaded_total",
			Help:      "Session files parsed into paths.",
		}),
		filesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "files_skipped_total",
			Help:      "Session files that could not be read.",
		}),
		linesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "lines_skipped_total",
			Help:      "Header and malformed lines ignored while loading.",
		}),
		samplesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "samples_appended_total",
			Help:      "Samples appended to already loaded paths as their files grew.",
		}),
		querySamples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "query_samples_total",
			Help:      "In-window samples returned by replay queries.",
		}),
	}

	c.registry.MustRegister(
		c.samplesWritten,
		c.samplesDropped,
		c.filesLoaded,
		c.filesSkipped,
		c.linesSkipped,
		c.samplesAdded,
		c.querySamples,
	)
	return c
}

// Registry exposes the underlying registry, e.g. for promhttp.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) SampleWritten() {
	if c != nil {
		c.samplesWritten.Inc()
	}
}

func (c *Collector) SampleDropped() {
	if c != nil {
		c.samplesDropped.Inc()
	}
}

func (c *Collector) FileLoaded(skippedLines int) {
	if c != nil {
		c.filesLoaded.Inc()
		c.linesSkipped.Add(float64(skippedLines))
	}
}

func (c *Collector) PathExtended(samples, skippedLines int) {
	if c != nil {
		c.samplesAdded.Add(float64(samples))
		c.linesSkipped.Add(float64(skippedLines))
	}
}

func (c *Collector) FileSkipped() {
	if c != nil {
		c.filesSkipped.Inc()
	}
}

func (c *Collector) QueryReturned(samples int) {
	if c != nil && samples > 0 {
		c.querySamples.Add(float64(samples))
	}
}

// Snapshot returns the current value of every counter, keyed by full name.
func (c *Collector) Snapshot() (map[string]float64, error) {
	if c == nil {
		return map[string]float64{}, nil
	}

	families, err := c.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	values := make(map[string]float64, len(families))
	for _, family := range families {
		for _, m := range family.GetMetric() {
			values[family.GetName()] += metricValue(family.GetType(), m)
		}
	}
	return values, nil
}

func metricValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_UNTYPED:
		return m.GetUntyped().GetValue()
	default:
		return 0
	}
}

// WriteText prints every counter as "name value", sorted by name.
func (c *Collector) WriteText(w io.Writer) error {
	values, err := c.Snapshot()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s %g\n", name, values[name]); err != nil {
			return err
		}
	}
	return nil
}
