package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs/component"
)

const EyeShaderName = "eye"

// Eye surface shading constants. Distances are in units of twice the local
// surface radius, so the eye rim sits at 1.
const (
	EyeRingFrequency = 10.0
	EyeRingWeight    = 0.3
	EyePupilInner    = 0.3
	EyePupilOuter    = 0.4
	EyeTrackerInner  = 0.20
	EyeTrackerOuter  = 0.25
	EyeGlowBase      = 2.0
	EyeGlowGain      = 5.0
	EyeGlowMixBase   = 0.5
	EyeGlowMixGain   = 0.5
	EyeLidLow        = 0.9
	EyeLidHigh       = 1.0
)

var (
	EyeDarkColor    = mgl64.Vec3{0.1, 0.1, 0.1}
	EyeTrackerColor = mgl64.Vec3{0, 1, 0.7}
	eyeWhite        = mgl64.Vec3{1, 1, 1}
)

// EyeSample is the shaded eye surface before lighting and emissive are added.
type EyeSample struct {
	Color mgl64.Vec3
	Alpha float64
}

// EyeDistance is the radial distance used by every eye term.
func EyeDistance(local mgl64.Vec2) float64 {
	return local.Len() * 2
}

// GlowStrength scales the tracker color.
func GlowStrength(trackingIntensity float64) float64 {
	return EyeGlowBase + trackingIntensity*EyeGlowGain
}

// GlowMix is how far the tracker ring pulls toward the glowing tracker color.
func GlowMix(trackingIntensity float64) float64 {
	return EyeGlowMixBase + trackingIntensity*EyeGlowMixGain
}

// Eyelid maps the shared blink scalar to lid openness. It peaks mid-cycle
// and is zero at blink 0 and blink 1.
func Eyelid(blink float64) float64 {
	return common.Smoothstep(EyeLidLow, EyeLidHigh, math.Sin(blink*math.Pi))
}

// ShadeEye evaluates the eye surface at a local surface position. It mirrors
// assets/shaders/eye.kage term for term.
func ShadeEye(local mgl64.Vec2, base mgl64.Vec3, blink, trackingIntensity float64) EyeSample {
	dist := EyeDistance(local)
	c := base

	ring := math.Sin(dist*EyeRingFrequency)*0.5 + 0.5
	c = mixVec(c, eyeWhite, ring*EyeRingWeight)

	pupil := common.Smoothstep(EyePupilInner, EyePupilOuter, dist)
	c = mixVec(EyeDarkColor, c, pupil)

	tracker := common.Smoothstep(EyeTrackerOuter, EyeTrackerInner, dist)
	c = mixVec(c, EyeTrackerColor.Mul(GlowStrength(trackingIntensity)), tracker*GlowMix(trackingIntensity))

	lid := Eyelid(blink)
	c = mixVec(EyeDarkColor, c, lid)

	return EyeSample{Color: c, Alpha: common.Mix(0, 1, lid)}
}

// EyeUniforms builds the uniform map for one eye draw call. Lighting travels
// in vertex colors and is not part of the map.
func EyeUniforms(mat *component.Material) map[string]any {
	u := map[string]any{
		"Blink":             float32(0),
		"TrackingIntensity": float32(0),
		"BaseColor":         []float32{1, 1, 1},
		"Emissive":          []float32{0, 0, 0},
		"Transparent":       float32(0),
	}
	if mat == nil {
		return u
	}
	u["BaseColor"] = vec3f(mat.Color)
	u["Emissive"] = vec3f(mat.Emissive.Mul(mat.EmissiveIntensity))
	if mat.Transparent {
		u["Transparent"] = float32(1)
	}
	if mat.Eye != nil {
		if mat.Eye.Blink != nil {
			u["Blink"] = float32(mat.Eye.Blink.Value())
		}
		u["TrackingIntensity"] = float32(common.Clamp01(mat.Eye.TrackingIntensity))
	}
	return u
}

func mixVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		common.Mix(a[0], b[0], t),
		common.Mix(a[1], b[1], t),
		common.Mix(a[2], b[2], t),
	}
}

func vec3f(v mgl64.Vec3) []float32 {
	return []float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
