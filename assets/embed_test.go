package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadShaderSource(t *testing.T) {
	b, err := LoadShaderSource("eye")
	require.NoError(t, err)
	assert.Contains(t, string(b), "func Fragment")
	assert.Contains(t, string(b), "var Blink float")

	_, err = LoadShaderSource("missing")
	assert.Error(t, err)
}

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"assets/shaders/eye.kage", "shaders/eye.kage"},
		{"shaders/eye.kage", "shaders/eye.kage"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanAssetPath(tt.in), tt.in)
	}
}

func TestShaderNames(t *testing.T) {
	assert.Contains(t, ShaderNames(), "eye")
}
