package system

import (
	"math/rand"

	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
)

const (
	BlinkDurationMS = 200.0
	BlinkMinDelayMS = 3000.0
	BlinkMaxDelayMS = 7000.0
)

// BlinkSystem runs the idle -> closing -> idle cycle. Closing eases the
// shared blink scalar from 0 to 1; finishing snaps it back to 0 and draws a
// fresh delay.
type BlinkSystem struct {
	rng *rand.Rand
}

func NewBlinkSystem(rng *rand.Rand) *BlinkSystem {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &BlinkSystem{rng: rng}
}

// NextBlinkDelay draws a delay in [BlinkMinDelayMS, BlinkMaxDelayMS).
func NextBlinkDelay(rng *rand.Rand) float64 {
	return BlinkMinDelayMS + rng.Float64()*(BlinkMaxDelayMS-BlinkMinDelayMS)
}

func (b *BlinkSystem) Update(w *ecs.World) {
	if b == nil || w == nil {
		return
	}
	clock, ok := ecs.Singleton(w, component.ClockComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach(w, component.BlinkComponent.Kind(), func(_ ecs.Entity, blink *component.Blink) {
		b.Advance(blink, clock.DeltaMS)
	})
}

// Advance steps one blink state machine by dtMS.
func (b *BlinkSystem) Advance(blink *component.Blink, dtMS float64) {
	if blink == nil || blink.Cell == nil {
		return
	}
	if !blink.Armed() {
		b.rearm(blink)
	}
	if dtMS <= 0 || !common.IsFinite(dtMS) {
		return
	}

	blink.ElapsedMS += dtMS
	for {
		switch blink.Phase {
		case component.BlinkIdle:
			if blink.ElapsedMS < blink.DelayMS {
				return
			}
			blink.ElapsedMS -= blink.DelayMS
			if blink.ElapsedMS >= BlinkDurationMS {
				// a long tick jumped past the whole close; show its midpoint
				// so the blink still reaches the screen
				blink.ElapsedMS = BlinkDurationMS / 2
			}
			blink.Phase = component.BlinkClosing
		case component.BlinkClosing:
			if blink.ElapsedMS < BlinkDurationMS {
				blink.Cell.Set(common.EaseInOutQuad(blink.ElapsedMS / BlinkDurationMS))
				return
			}
			blink.Cycles++
			b.rearm(blink)
			// the reopen is instantaneous; any leftover time is dropped so a
			// long tick never chains two blinks
			return
		default:
			b.rearm(blink)
			return
		}
	}
}

func (b *BlinkSystem) rearm(blink *component.Blink) {
	blink.Phase = component.BlinkIdle
	blink.ElapsedMS = 0
	blink.DelayMS = NextBlinkDelay(b.rng)
	blink.Cell.Set(0)
	blink.Arm()
}
