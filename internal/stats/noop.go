package stats

// Noop is a no-op collector that discards all metrics. Used when the build
// is driven directly through bookbuild.Run (as its tests do) with no metrics
// backend; the CLI without --metrics-addr uses the logger-backed collector.
type Noop struct{}

var _ Collector = (*Noop)(nil)

// NewNoop creates a new no-op collector.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) IncCounter(name string, delta int64)         {}
func (n *Noop) SetGauge(name string, value int64)           {}
func (n *Noop) ObserveHistogram(name string, value float64) {}
