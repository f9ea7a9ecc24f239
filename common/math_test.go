package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoothstep(t *testing.T) {
	cases := []struct {
		name         string
		edge0, edge1 float64
		x            float64
		want         float64
	}{
		{"below", 0.3, 0.4, 0.1, 0},
		{"above", 0.3, 0.4, 0.9, 1},
		{"midpoint", 0.3, 0.4, 0.35, 0.5},
		{"reversed_inside", 0.25, 0.20, 0.1, 1},
		{"reversed_outside", 0.25, 0.20, 0.3, 0},
		{"equal_edges_below", 1, 1, 0.5, 0},
		{"equal_edges_at", 1, 1, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, Smoothstep(c.edge0, c.edge1, c.x), 1e-12)
		})
	}
}

func TestLerpEndpoints(t *testing.T) {
	assert.Equal(t, 0.6, Lerp(0.6, -0.4, 0))
	assert.Equal(t, -0.4, Lerp(0.6, -0.4, 1))
	assert.InDelta(t, 0.1, Lerp(0.6, -0.4, 0.5), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.25, Clamp(3, -0.25, 0.25))
	assert.Equal(t, -0.25, Clamp(-3, -0.25, 0.25))
	assert.Equal(t, 0.1, Clamp(0.1, -0.25, 0.25))
	assert.Equal(t, 0.0, Clamp01(-1))
}

func TestEasingEndpoints(t *testing.T) {
	for name, ease := range map[string]EaseFunc{
		"linear":    EaseLinear,
		"inOutQuad": EaseInOutQuad,
		"inOutSine": EaseInOutSine,
	} {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, ease(0), 1e-12)
			assert.InDelta(t, 1, ease(1), 1e-12)
			assert.InDelta(t, 0.5, ease(0.5), 1e-12)

			prev := ease(0)
			for i := 1; i <= 100; i++ {
				v := ease(float64(i) / 100)
				assert.GreaterOrEqual(t, v, prev)
				prev = v
			}
		})
	}
}

func TestDegToRad(t *testing.T) {
	assert.InDelta(t, math.Pi, DegToRad(180), 1e-12)
}
