// Package status keeps lock-free runtime counters and gauges for the stats line.
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry is the metrics facade
// Owners cache pointers once; per-frame updates write directly to atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Line renders every metric as "key value" pairs in key order, ints first
func (r *Registry) Line() string {
	var parts []string
	r.Ints.Range(func(key string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s %d", key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s %.1f", key, v.Get()))
	})
	return strings.Join(parts, "  ")
}
