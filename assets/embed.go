package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed shaders/*.kage
var assetsFS embed.FS

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	b, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("assets: read %q: %w", clean, err)
	}
	return b, nil
}

// LoadShaderSource returns the Kage source for a shader name such as "eye".
func LoadShaderSource(name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".kage")
	return LoadFile("shaders/" + name + ".kage")
}

// ShaderNames lists the embedded shaders without extension.
func ShaderNames() []string {
	entries, err := fs.ReadDir(assetsFS, "shaders")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".kage"))
	}
	return out
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
