package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robothead/ecs"
	"github.com/milk9111/robothead/ecs/component"
	"github.com/milk9111/robothead/ecs/render"
	"go.uber.org/zap"
)

var backgroundColor = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}

// RenderSystem projects every mesh through the camera, sorts triangles back
// to front and draws them, eyes through the eye shader.
type RenderSystem struct {
	eyeShader  *ebiten.Shader
	shaderErr  bool
	faces      []render.Face
	Background color.Color
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Background: backgroundColor}
}

// ReloadShaders recompiles the shaders, keeping the old ones on error.
func (r *RenderSystem) ReloadShaders() {
	if r == nil {
		return
	}
	shaders, err := render.ReloadShaders()
	if err != nil {
		zap.L().Warn("render: shader reload failed", zap.Error(err))
	}
	if s, ok := shaders[render.EyeShaderName]; ok {
		r.eyeShader = s
		r.shaderErr = false
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.Background != nil {
		screen.Fill(r.Background)
	}

	cam, ok := ecs.Singleton(w, component.CameraComponent.Kind())
	if !ok || cam.Camera == nil || !cam.Camera.Valid() {
		return
	}

	if r.eyeShader == nil && !r.shaderErr {
		s, err := render.LoadShader(render.EyeShaderName)
		if err != nil {
			// fall back to flat eyes for the rest of the session
			r.shaderErr = true
			zap.L().Error("render: eye shader unavailable", zap.Error(err))
		}
		r.eyeShader = s
	}

	b := screen.Bounds()
	frame := render.NewFrame(cam.Camera, float64(b.Dx()), float64(b.Dy()))

	r.faces = r.faces[:0]
	ecs.ForEach(w, component.MeshComponent.Kind(), func(_ ecs.Entity, m *component.Mesh) {
		if m.Node == nil || !m.Node.WorldVisible() {
			return
		}
		r.faces = frame.ProjectMesh(m.Node.WorldMatrix(), m.Geometry, m.Material, r.faces)
	})
	render.SortFaces(r.faces)
	render.DrawBatches(screen, render.BuildBatches(r.faces), r.eyeShader)
}
