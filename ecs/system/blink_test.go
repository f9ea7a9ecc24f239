package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBlinkDelayRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		d := NextBlinkDelay(rng)
		require.GreaterOrEqual(t, d, BlinkMinDelayMS)
		require.Less(t, d, BlinkMaxDelayMS)
	}
}

func TestBlinkCycle(t *testing.T) {
	sys := NewBlinkSystem(rand.New(rand.NewSource(7)))
	cell := &component.BlinkCell{}
	blink := &component.Blink{Cell: cell}

	sys.Advance(blink, 0)
	require.True(t, blink.Armed())
	delay := blink.DelayMS
	require.GreaterOrEqual(t, delay, BlinkMinDelayMS)

	// idle holds zero until the delay runs out
	sys.Advance(blink, delay-1)
	assert.Equal(t, component.BlinkIdle, blink.Phase)
	assert.Equal(t, 0.0, cell.Value())

	sys.Advance(blink, 1+BlinkDurationMS/2)
	assert.Equal(t, component.BlinkClosing, blink.Phase)
	assert.InDelta(t, common.EaseInOutQuad(0.5), cell.Value(), 1e-9)

	sys.Advance(blink, BlinkDurationMS/4)
	assert.InDelta(t, common.EaseInOutQuad(0.75), cell.Value(), 1e-9)

	sys.Advance(blink, BlinkDurationMS/4)
	assert.Equal(t, component.BlinkIdle, blink.Phase, "closing ends back in idle")
	assert.Equal(t, 0.0, cell.Value(), "reopen is instantaneous")
	assert.Equal(t, 1, blink.Cycles)
	assert.GreaterOrEqual(t, blink.DelayMS, BlinkMinDelayMS)
	assert.Less(t, blink.DelayMS, BlinkMaxDelayMS)
	assert.Zero(t, blink.ElapsedMS)
}

func TestBlinkScalarStaysInRange(t *testing.T) {
	sys := NewBlinkSystem(rand.New(rand.NewSource(3)))
	blink := &component.Blink{Cell: &component.BlinkCell{}}
	for i := 0; i < 20000; i++ {
		sys.Advance(blink, float64(i%40)+0.5)
		v := blink.Cell.Value()
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
	assert.Greater(t, blink.Cycles, 10)
}

func TestBlinkIgnoresBadDelta(t *testing.T) {
	sys := NewBlinkSystem(nil)
	blink := &component.Blink{Cell: &component.BlinkCell{}}
	sys.Advance(blink, -50)
	assert.Zero(t, blink.ElapsedMS)
	sys.Advance(nil, 10)
	sys.Advance(&component.Blink{}, 10)
}

func TestBlinkSystemSharesCellWithEyes(t *testing.T) {
	w, _ := newTestWorld(t)
	clock := testClock(t, w)
	sys := NewBlinkSystem(rand.New(rand.NewSource(1)))

	clock.DeltaMS = 0
	sys.Update(w)
	b := blinkOf(t, w)
	clock.DeltaMS = b.DelayMS + BlinkDurationMS/2
	sys.Update(w)

	for _, eye := range eyesOf(t, w) {
		assert.InDelta(t, b.Cell.Value(), eye.Blink.Value(), 0)
		assert.Greater(t, eye.Blink.Value(), 0.0)
	}
}

func TestBlinkLongTickStillShowsClose(t *testing.T) {
	sys := NewBlinkSystem(rand.New(rand.NewSource(11)))
	cell := &component.BlinkCell{}
	blink := &component.Blink{Cell: cell}
	sys.Advance(blink, 0)

	// one clamped tick that crosses the delay and overshoots the close
	sys.Advance(blink, blink.DelayMS-10)
	sys.Advance(blink, MaxClockStepMS)
	assert.Equal(t, component.BlinkClosing, blink.Phase)
	assert.InDelta(t, common.EaseInOutQuad(0.5), cell.Value(), 1e-9)
	assert.Zero(t, blink.Cycles)

	sys.Advance(blink, MaxClockStepMS)
	assert.Equal(t, component.BlinkIdle, blink.Phase)
	assert.Equal(t, 0.0, cell.Value())
	assert.Equal(t, 1, blink.Cycles)
}
