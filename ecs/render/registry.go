package render

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	shadersMu sync.RWMutex
	shaders   = map[string]*ebiten.Shader{}

	whiteOnce sync.Once
	white     *ebiten.Image
)

// RegisterShader stores a compiled shader by key, disposing any shader it
// replaces.
func RegisterShader(key string, s *ebiten.Shader) {
	if key == "" || s == nil {
		return
	}
	shadersMu.Lock()
	defer shadersMu.Unlock()
	if old, ok := shaders[key]; ok && old != s {
		old.Deallocate()
	}
	shaders[key] = s
}

// GetShader returns a cached shader by key.
func GetShader(key string) *ebiten.Shader {
	if key == "" {
		return nil
	}
	shadersMu.RLock()
	defer shadersMu.RUnlock()
	return shaders[key]
}

// WhitePixel is the 1x1 source image flat-colored triangles are drawn from.
func WhitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		white = ebiten.NewImage(1, 1)
		white.Fill(color.White)
	})
	return white
}
