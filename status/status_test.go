package status

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricMap_GetCachesPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("frames")
	a.Add(3)
	assert.Same(t, a, r.Ints.Get("frames"))
	assert.Equal(t, int64(3), r.Ints.Get("frames").Load())
	assert.Equal(t, 1, r.Ints.Count())
	assert.Zero(t, r.Floats.Count())
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("frames").Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, int64(800), m.Get("frames").Load())
}

func TestRegistry_Line(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Line())

	r.Ints.Get("particles").Store(144)
	r.Ints.Get("active").Store(12)
	r.Floats.Get("fps").Set(59.94)
	assert.Equal(t, "active 12  particles 144  fps 59.9", r.Line())
}

func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat
	assert.Zero(t, f.Get())
	f.Set(1.5)
	assert.Equal(t, 1.5, f.Get())
	f.Set(-0.25)
	assert.Equal(t, -0.25, f.Get())
}
