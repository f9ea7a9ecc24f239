package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/stretchr/testify/assert"
)

func assertVec3(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d", i)
	}
}

func TestEyelidIsNonMonotonic(t *testing.T) {
	tests := []struct {
		blink float64
		want  float64
	}{
		{0, 0},
		{1, 0},
		{0.5, 1},
		{0.25, 0},
		{0.75, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Eyelid(tt.blink), 1e-9, "blink=%v", tt.blink)
	}
	// Open at both ends of the raw scalar, closed only near mid-cycle.
	assert.Equal(t, Eyelid(0), Eyelid(1))
}

func TestGlowTerms(t *testing.T) {
	assert.InDelta(t, 2.0, GlowStrength(0), 1e-12)
	assert.InDelta(t, 7.0, GlowStrength(1), 1e-12)
	assert.InDelta(t, 0.5, GlowMix(0), 1e-12)
	assert.InDelta(t, 1.0, GlowMix(1), 1e-12)
}

func TestShadeEye(t *testing.T) {
	white := mgl64.Vec3{1, 1, 1}
	tests := []struct {
		name     string
		local    mgl64.Vec2
		blink    float64
		tracking float64
		want     mgl64.Vec3
		alpha    float64
	}{
		{"lid_down_at_rest", mgl64.Vec2{0.1, 0.1}, 0, 1, EyeDarkColor, 0},
		{"center_full_tracking", mgl64.Vec2{0, 0}, 0.5, 1, mgl64.Vec3{0, 7, 4.9}, 1},
		{"center_no_tracking", mgl64.Vec2{0, 0}, 0.5, 0, mgl64.Vec3{0.05, 1.05, 0.75}, 1},
		{"rim_is_base", mgl64.Vec2{0.5, 0}, 0.5, 1, white, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShadeEye(tt.local, white, tt.blink, tt.tracking)
			assertVec3(t, tt.want, got.Color)
			assert.InDelta(t, tt.alpha, got.Alpha, 1e-9)
		})
	}
}

func TestShadeEyeTrackerGrowsWithIntensity(t *testing.T) {
	base := mgl64.Vec3{1, 1, 1}
	prev := -1.0
	for i := 0; i <= 10; i++ {
		s := ShadeEye(mgl64.Vec2{0.05, 0}, base, 0.5, float64(i)/10)
		assert.GreaterOrEqual(t, s.Color.Y(), prev)
		prev = s.Color.Y()
	}
}

func TestEyeUniforms(t *testing.T) {
	u := EyeUniforms(nil)
	assert.Equal(t, float32(0), u["Blink"])
	assert.Equal(t, []float32{1, 1, 1}, u["BaseColor"])

	cell := &component.BlinkCell{}
	cell.Set(0.5)
	mat := &component.Material{
		Shading:           component.ShadingEye,
		Color:             mgl64.Vec3{1, 1, 1},
		Emissive:          mgl64.Vec3{0, 1, 1},
		EmissiveIntensity: 0.5,
		Eye:               &component.Eye{Blink: cell, TrackingIntensity: 1.5},
	}
	u = EyeUniforms(mat)
	assert.Equal(t, float32(0.5), u["Blink"])
	assert.Equal(t, float32(1), u["TrackingIntensity"])
	assert.Equal(t, []float32{0, 0.5, 0.5}, u["Emissive"])
	assert.Equal(t, float32(0), u["Transparent"])

	mat.Transparent = true
	assert.Equal(t, float32(1), EyeUniforms(mat)["Transparent"])
}
