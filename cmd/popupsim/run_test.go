package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/popup/pkg/config"
	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/popup"
	"github.com/go-drift/popup/pkg/scene"
	"github.com/go-drift/popup/pkg/scheduler"
)

func withDefaultProfile(t *testing.T) {
	t.Helper()
	setupLogger()
	prev := profile
	res, err := (&config.Config{}).Resolve()
	require.NoError(t, err)
	profile = res
	t.Cleanup(func() { profile = prev })
}

func TestSurfaceSizeDefault(t *testing.T) {
	withDefaultProfile(t)
	assert.Equal(t, defaultSurface, surfaceSize())

	profile.Surface = graphics.Size{Width: 1024, Height: 768}
	assert.Equal(t, profile.Surface, surfaceSize())
}

func TestInjectorSelection(t *testing.T) {
	withDefaultProfile(t)
	loop := scheduler.NewLoop()
	root := scene.NewRoot(loop, defaultSurface)
	defer root.Close()

	for _, dismiss := range []string{"outside", "escape", "back"} {
		runOpts.dismiss = dismiss
		inject, err := injector(loop, root)
		require.NoError(t, err, dismiss)
		assert.NotNil(t, inject, dismiss)
	}

	runOpts.dismiss = "none"
	inject, err := injector(loop, root)
	require.NoError(t, err)
	assert.Nil(t, inject, "none schedules no interaction")

	runOpts.dismiss = "sideways"
	_, err = injector(loop, root)
	assert.Error(t, err)
}

func TestKeyInjectorDispatches(t *testing.T) {
	withDefaultProfile(t)
	loop := scheduler.NewLoop()
	root := scene.NewRoot(loop, defaultSurface)
	defer root.Close()

	var got []int
	remove := root.AddKeyHandler(func(ev scene.KeyEvent) bool {
		got = append(got, ev.Code)
		return true
	})
	defer remove()

	keyInjector(loop, root, popup.DefaultEscapeKeyCode)()
	loop.Step(time.Now())

	require.Len(t, got, 1)
	assert.Equal(t, popup.DefaultEscapeKeyCode, got[0])
}
