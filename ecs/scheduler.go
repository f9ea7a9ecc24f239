package ecs

import "github.com/hajimehoshi/ebiten/v2"

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// Drawer renders world state. Systems may implement both.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

// Scheduler runs systems in registration order.
type Scheduler struct {
	systems []System
	drawers []Drawer
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) AddDrawer(d Drawer) {
	if d == nil {
		return
	}
	s.drawers = append(s.drawers, d)
}

// Update runs every system once then clears events raised this tick.
func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
}

func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if s == nil || w == nil || screen == nil {
		return
	}
	for _, d := range s.drawers {
		d.Draw(w, screen)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

func (s *Scheduler) Drawers() []Drawer {
	drawers := make([]Drawer, 0, len(s.drawers))
	return append(drawers, s.drawers...)
}
