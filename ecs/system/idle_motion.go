package system

import (
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
)

const (
	IdleHalfCycleMS = 4000.0
	IdlePitchDeg    = 2.0
	IdleYawDeg      = 5.0
)

// IdleMotionSystem sways the head between rest and a small pitch/yaw offset.
type IdleMotionSystem struct{}

func NewIdleMotionSystem() *IdleMotionSystem {
	return &IdleMotionSystem{}
}

func (s *IdleMotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	clock, ok := ecs.Singleton(w, component.ClockComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach(w, component.IdleMotionComponent.Kind(), func(_ ecs.Entity, m *component.IdleMotion) {
		if m.Node == nil {
			return
		}
		if m.Yoyo == nil {
			m.Pitch = common.DegToRad(IdlePitchDeg)
			m.Yaw = common.DegToRad(IdleYawDeg)
			m.Yoyo = common.NewYoyo(IdleHalfCycleMS, common.EaseInOutQuad)
		}
		t := m.Yoyo.Advance(clock.DeltaMS)
		m.Node.Rotation[0] = m.Pitch * t
		m.Node.Rotation[1] = m.Yaw * t
	})
}
