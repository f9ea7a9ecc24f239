package common

import "math"

// Yoyo is an infinitely repeating forward/reverse tween. It only tracks time;
// callers interpolate their own endpoints with Progress.
type Yoyo struct {
	HalfCycleMS float64
	Ease        EaseFunc

	elapsed float64
}

func NewYoyo(halfCycleMS float64, ease EaseFunc) *Yoyo {
	if ease == nil {
		ease = EaseLinear
	}
	return &Yoyo{HalfCycleMS: halfCycleMS, Ease: ease}
}

// Advance moves the tween forward by dtMS and returns the eased progress.
func (y *Yoyo) Advance(dtMS float64) float64 {
	if y == nil {
		return 0
	}
	if dtMS > 0 && IsFinite(dtMS) {
		y.elapsed += dtMS
	}
	// keep the accumulator bounded to one full cycle
	if y.HalfCycleMS > 0 {
		y.elapsed = math.Mod(y.elapsed, 2*y.HalfCycleMS)
	}
	return y.Progress()
}

// Progress returns the eased position in [0,1]; 0 at the start of a forward
// leg, 1 at the turnaround.
func (y *Yoyo) Progress() float64 {
	if y == nil || y.HalfCycleMS <= 0 {
		return 0
	}
	ease := y.Ease
	if ease == nil {
		ease = EaseLinear
	}
	phase := y.elapsed / y.HalfCycleMS
	if phase <= 1 {
		return ease(Clamp01(phase))
	}
	return ease(Clamp01(2 - phase))
}

// Elapsed reports time spent in the current full cycle.
func (y *Yoyo) Elapsed() float64 {
	if y == nil {
		return 0
	}
	return y.elapsed
}
