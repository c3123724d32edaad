package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ZeroSafe(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())

	n := Vec2{X: 3, Y: 4}.Normalize()
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)
	assert.InDelta(t, 1.0, n.Magnitude(), 1e-12)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 25.0, DistanceSq(0, 0, 3, 4))
	assert.Equal(t, 5.0, Distance(0, 0, 3, 4))
	assert.Equal(t, 0.0, Distance(7, 7, 7, 7))
}

func TestApproach_ConvergesWithoutOvershoot(t *testing.T) {
	v := 0.0
	for i := 0; i < 500; i++ {
		next := Approach(v, 10, 0.06)
		assert.GreaterOrEqual(t, next, v)
		assert.LessOrEqual(t, next, 10.0)
		v = next
	}
	assert.InDelta(t, 10, v, 1e-6)

	assert.Equal(t, 10.0, Approach(3, 10, 1))
}

func TestVecArithmetic(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: 4, Y: 6}
	assert.Equal(t, Vec2{X: 5, Y: 8}, a.Add(b))
	assert.Equal(t, Vec2{X: 3, Y: 4}, b.Sub(a))
	assert.Equal(t, Vec2{X: 2, Y: 4}, a.Scale(2))
	assert.Equal(t, 25.0, b.Sub(a).MagnitudeSq())
}
