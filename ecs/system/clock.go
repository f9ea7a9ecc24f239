package system

import (
	"time"

	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
)

// MaxClockStepMS caps one tick so a stalled window cannot fast-forward
// several blinks at once.
const MaxClockStepMS = 250.0

// ClockSystem advances the tween clock by wall-clock time.
type ClockSystem struct {
	now     func() time.Time
	last    time.Time
	started bool
}

func NewClockSystem() *ClockSystem {
	return &ClockSystem{now: time.Now}
}

// NewClockSystemWithNow is NewClockSystem with an injected time source.
func NewClockSystemWithNow(now func() time.Time) *ClockSystem {
	if now == nil {
		now = time.Now
	}
	return &ClockSystem{now: now}
}

func (c *ClockSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}
	clock, ok := ecs.Singleton(w, component.ClockComponent.Kind())
	if !ok {
		return
	}

	now := c.now()
	dt := 0.0
	if c.started {
		dt = float64(now.Sub(c.last)) / float64(time.Millisecond)
	}
	c.last = now
	c.started = true

	if dt < 0 {
		dt = 0
	}
	if dt > MaxClockStepMS {
		dt = MaxClockStepMS
	}
	if clock.Paused {
		dt = 0
	}

	clock.DeltaMS = dt
	clock.ElapsedMS += dt
	clock.Frame++
}

// clockPaused reports whether the shared clock is paused. Systems that step
// once per tick instead of by DeltaMS check it directly.
func clockPaused(w *ecs.World) bool {
	clock, ok := ecs.Singleton(w, component.ClockComponent.Kind())
	return ok && clock.Paused
}
