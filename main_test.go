package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFlags(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--debug", "--seed", "42", "--watch", "-m", "--no-persist"}))

	f := cmd.Flags()
	debug, err := f.GetBool("debug")
	require.NoError(t, err)
	assert.True(t, debug)

	seed, err := f.GetInt64("seed")
	require.NoError(t, err)
	assert.Equal(t, int64(42), seed)

	for name, want := range map[string]bool{
		"watch":        true,
		"base-monitor": true,
		"no-persist":   true,
		"autopilot":    false,
	} {
		got, err := f.GetBool(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestRootRejectsUnknownFlag(t *testing.T) {
	cmd := newRootCmd()
	assert.Error(t, cmd.ParseFlags([]string{"--level", "x"}))
}
