package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockSystem(t *testing.T) {
	w, _ := newTestWorld(t)
	now := &fakeNow{t: time.Unix(100, 0)}
	sys := NewClockSystemWithNow(now.Now)
	clock := testClock(t, w)

	sys.Update(w)
	assert.Equal(t, 0.0, clock.DeltaMS, "first tick has no delta")
	assert.Equal(t, uint64(1), clock.Frame)

	tests := []struct {
		name    string
		advance time.Duration
		paused  bool
		want    float64
	}{
		{"frame", 16 * time.Millisecond, false, 16},
		{"stall_is_clamped", 2 * time.Second, false, MaxClockStepMS},
		{"backwards_is_zero", -time.Second, false, 0},
		{"paused", 16 * time.Millisecond, true, 0},
	}
	elapsed := 0.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.Paused = tt.paused
			now.Advance(tt.advance)
			sys.Update(w)
			assert.InDelta(t, tt.want, clock.DeltaMS, 1e-9)
			elapsed += tt.want
			assert.InDelta(t, elapsed, clock.ElapsedMS, 1e-9)
		})
	}
}

func TestClockSystemWithoutClockIsNoop(t *testing.T) {
	sys := NewClockSystem()
	assert.NotPanics(t, func() { sys.Update(nil) })
	var nilSys *ClockSystem
	assert.NotPanics(t, func() { nilSys.Update(nil) })
}
