package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/robothead/assets"
)

// LoadShader compiles a Kage shader from disk or the embedded assets and
// caches it by name. A file under assets/shaders on disk wins over the
// embedded copy so edits are picked up without a rebuild.
func LoadShader(name string) (*ebiten.Shader, error) {
	if name == "" {
		return nil, fmt.Errorf("render: empty shader name")
	}
	if s := GetShader(name); s != nil {
		return s, nil
	}
	return ReloadShader(name)
}

// ReloadShader recompiles name and replaces the cached shader. On a compile
// error the previous shader stays registered.
func ReloadShader(name string) (*ebiten.Shader, error) {
	src, err := ShaderSource(name)
	if err != nil {
		return nil, err
	}
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("render: compile shader %q: %w", name, err)
	}
	RegisterShader(name, s)
	return s, nil
}

// ReloadShaders recompiles every shader shipped in the assets. Shaders that
// fail to compile keep their previous registration; the errors are joined.
func ReloadShaders() (map[string]*ebiten.Shader, error) {
	out := map[string]*ebiten.Shader{}
	var errs []error
	for _, name := range assets.ShaderNames() {
		s, err := ReloadShader(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[name] = s
	}
	return out, errors.Join(errs...)
}

// ShaderSource returns the Kage source for name, preferring disk.
func ShaderSource(name string) ([]byte, error) {
	for _, p := range ShaderPaths(name) {
		if b, err := os.ReadFile(p); err == nil {
			return b, nil
		}
	}
	b, err := assets.LoadShaderSource(name)
	if err != nil {
		return nil, fmt.Errorf("render: load shader %q: %w", name, err)
	}
	return b, nil
}

// ShaderPaths lists the on-disk locations checked for name.
func ShaderPaths(name string) []string {
	file := name + ".kage"
	return []string{
		filepath.Join("assets", "shaders", file),
		filepath.Join("shaders", file),
	}
}
