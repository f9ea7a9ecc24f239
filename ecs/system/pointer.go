package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robothead/common"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
)

// PointerSystem turns the cursor into normalized device coordinates. The
// pointer component only changes when the cursor moves.
type PointerSystem struct {
	cursor func() (int, int)
	width  float64
	height float64

	lastX, lastY int
	seen         bool
}

func NewPointerSystem() *PointerSystem {
	return &PointerSystem{
		cursor: ebiten.CursorPosition,
		width:  common.BaseWidth,
		height: common.BaseHeight,
	}
}

// NewPointerSystemWithCursor is NewPointerSystem with an injected cursor source.
func NewPointerSystemWithCursor(cursor func() (int, int)) *PointerSystem {
	p := NewPointerSystem()
	if cursor != nil {
		p.cursor = cursor
	}
	return p
}

// SetViewport sets the logical screen size cursor positions are measured in.
func (p *PointerSystem) SetViewport(width, height int) {
	if p == nil || width <= 0 || height <= 0 {
		return
	}
	p.width = float64(width)
	p.height = float64(height)
}

func (p *PointerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	ptr, ok := ecs.Singleton(w, component.PointerComponent.Kind())
	if !ok {
		return
	}

	ptr.Moved = false
	x, y := p.cursor()
	if p.seen && x == p.lastX && y == p.lastY {
		return
	}
	p.lastX, p.lastY = x, y
	p.seen = true

	ptr.X, ptr.Y = CursorToNDC(float64(x), float64(y), p.width, p.height)
	ptr.Moved = true
}

// CursorToNDC maps screen pixels (origin top-left, y down) to NDC
// (x right, y up).
func CursorToNDC(x, y, width, height float64) (float64, float64) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return x/width*2 - 1, -(y/height*2 - 1)
}
