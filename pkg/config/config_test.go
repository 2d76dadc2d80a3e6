package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/popup/pkg/errors"
	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/popup"
)

func TestParseDefaults(t *testing.T) {
	res, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, popup.DefaultKeymap(), res.Keymap)
	assert.Equal(t, popup.DefaultFade(), res.Transition)
	require.NotNil(t, res.Pool)
	assert.True(t, res.Surface.IsEmpty())
}

func TestParseFullProfile(t *testing.T) {
	doc := `
version: v1.2.0
keys:
  escape: 41
  back: 42
transition:
  kind: slide
  in: 150ms
  out: 250ms
  direction: up
  background: "#00000080"
pool:
  max_idle: 4
surface:
  width: 1024
  height: 768
`
	res, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, popup.Keymap{Escape: 41, Back: 42}, res.Keymap)

	slide, ok := res.Transition.(popup.Slide)
	require.True(t, ok, "kind slide resolves to a Slide")
	assert.Equal(t, 150*time.Millisecond, slide.In)
	assert.Equal(t, 250*time.Millisecond, slide.Out)
	assert.Equal(t, popup.DirectionUp, slide.Direction)
	assert.InDelta(t, 0.5, slide.Background.Alpha(), 0.01)

	require.NotNil(t, res.Pool)
	assert.Equal(t, graphics.Size{Width: 1024, Height: 768}, res.Surface)
}

func TestParseNamedBackground(t *testing.T) {
	res, err := Parse([]byte("transition:\n  kind: none\n  background: steelblue\n"))
	require.NoError(t, err)

	none, ok := res.Transition.(popup.None)
	require.True(t, ok)
	assert.Equal(t, 1.0, none.Background.Alpha())
	assert.NotEqual(t, popup.DefaultBackground, none.Background)
}

func TestParsePartialKeyOverride(t *testing.T) {
	res, err := Parse([]byte("keys:\n  escape: 9\n"))
	require.NoError(t, err)

	assert.Equal(t, 9, res.Keymap.Escape)
	assert.Equal(t, popup.DefaultBackKeyCode, res.Keymap.Back, "unset keys keep their defaults")
}

func TestParsePoolDisabled(t *testing.T) {
	res, err := Parse([]byte("pool:\n  max_idle: 0\n"))
	require.NoError(t, err)
	assert.Nil(t, res.Pool, "max_idle 0 disables pooling")
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "transition: [unclosed"},
		{"bad version", "version: one"},
		{"future major", "version: v2.0.0"},
		{"unknown kind", "transition:\n  kind: teleport"},
		{"unknown direction", "transition:\n  kind: slide\n  direction: sideways"},
		{"direction on fade", "transition:\n  kind: fade\n  direction: up"},
		{"duration on none", "transition:\n  kind: none\n  in: 100ms"},
		{"bad duration", "transition:\n  in: fast"},
		{"negative duration", "transition:\n  in: -1s"},
		{"bad color", "transition:\n  background: '#12'"},
		{"negative max_idle", "pool:\n  max_idle: -1"},
		{"negative surface", "surface:\n  width: -10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsConfig(err), "err = %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transition:\n  kind: fade\n  in: 80ms\n"), 0o644))

	res, err := Load(path)
	require.NoError(t, err)
	fade, ok := res.Transition.(popup.Fade)
	require.True(t, ok)
	assert.Equal(t, 80*time.Millisecond, fade.In)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsConfig(err))
}
