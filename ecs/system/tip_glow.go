package system

import (
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
)

const (
	TipGlowMax         = 1.0
	TipGlowMin         = 0.2
	TipGlowHalfCycleMS = 1000.0
)

// TipGlowSystem pulses the antenna tip's emissive intensity.
type TipGlowSystem struct{}

func NewTipGlowSystem() *TipGlowSystem {
	return &TipGlowSystem{}
}

func (s *TipGlowSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	clock, ok := ecs.Singleton(w, component.ClockComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach(w, component.TipGlowComponent.Kind(), func(_ ecs.Entity, glow *component.TipGlow) {
		if glow.Material == nil {
			return
		}
		if glow.Yoyo == nil {
			glow.Max, glow.Min = TipGlowMax, TipGlowMin
			glow.Yoyo = common.NewYoyo(TipGlowHalfCycleMS, common.EaseInOutSine)
		}
		t := glow.Yoyo.Advance(clock.DeltaMS)
		glow.Material.EmissiveIntensity = common.Lerp(glow.Max, glow.Min, t)
	})
}
