package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/popup"
	"github.com/go-drift/popup/pkg/scene"
	"github.com/go-drift/popup/pkg/scheduler"
)

var runOpts struct {
	dismiss       string
	after         time.Duration
	hold          time.Duration
	contentWidth  float64
	contentHeight float64
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a popup and report how it was dismissed",
	Long: `Open a modal popup on a headless surface and report the outcome.

The popup uses the profile's transition and keymap. After the --after
delay a scripted interaction is injected:

  outside   a pointer tap outside the popup content
  escape    the escape key
  back      the back key
  none      nothing; the popup closes normally after --hold

The command prints the dismiss cause and the total open duration.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runOpts.dismiss, "dismiss", "outside",
		"Scripted dismissal: outside, escape, back or none")
	runCmd.Flags().DurationVar(&runOpts.after, "after", 500*time.Millisecond,
		"Delay before the scripted interaction")
	runCmd.Flags().DurationVar(&runOpts.hold, "hold", 5*time.Second,
		"How long the popup stays up without a dismissal")
	runCmd.Flags().Float64Var(&runOpts.contentWidth, "content-width", 320,
		"Popup content width")
	runCmd.Flags().Float64Var(&runOpts.contentHeight, "content-height", 240,
		"Popup content height")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := scheduler.NewLoop()
	root := scene.NewRoot(loop, surfaceSize())
	defer root.Close()

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(loopCtx, scheduler.DefaultFrameInterval); err != nil && loopCtx.Err() == nil {
			logger.Error("loop stopped", "error", err)
		}
	}()

	inject, err := injector(loop, root)
	if err != nil {
		return err
	}

	content := scene.NewBox(graphics.Size{Width: runOpts.contentWidth, Height: runOpts.contentHeight})
	logger.Info("opening popup",
		"surface", surfaceSize(),
		"dismiss", runOpts.dismiss,
		"after", runOpts.after)

	start := time.Now()
	ev, err := popup.Open(ctx, popup.Options{
		Loop:       loop,
		Surface:    root,
		Content:    content,
		Pool:       profile.Pool,
		Transition: profile.Transition,
		Keymap:     &profile.Keymap,
	}, func(bodyCtx context.Context, _ *popup.DismissEvent) error {
		if inject != nil {
			injectTimer := time.AfterFunc(runOpts.after, inject)
			defer injectTimer.Stop()
		}
		select {
		case <-time.After(runOpts.hold):
			logger.Debug("hold elapsed, closing normally")
			return nil
		case <-bodyCtx.Done():
			return bodyCtx.Err()
		}
	})

	elapsed := time.Since(start).Round(time.Millisecond)
	stopLoop()
	<-loopDone

	if err != nil {
		return fmt.Errorf("popup failed after %s: %w", elapsed, err)
	}
	if ev.Fired() {
		fmt.Printf("dismissed cause=%s elapsed=%s\n", ev.Cause(), elapsed)
	} else {
		fmt.Printf("closed cause=%s elapsed=%s\n", ev.Cause(), elapsed)
	}
	return nil
}

// injector returns the scripted interaction for --dismiss, or nil for none.
func injector(loop *scheduler.Loop, root *scene.Root) (func(), error) {
	switch runOpts.dismiss {
	case "outside":
		return func() {
			logger.Debug("injecting outside tap")
			loop.Post(func() {
				pos := graphics.Offset{X: 2, Y: 2}
				root.DispatchPointer(scene.PointerEvent{Phase: scene.PointerDown, Position: pos})
				root.DispatchPointer(scene.PointerEvent{Phase: scene.PointerUp, Position: pos})
			})
		}, nil
	case "escape":
		return keyInjector(loop, root, profile.Keymap.Escape), nil
	case "back":
		return keyInjector(loop, root, profile.Keymap.Back), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown --dismiss value %q", runOpts.dismiss)
	}
}

func keyInjector(loop *scheduler.Loop, root *scene.Root, code int) func() {
	return func() {
		logger.Debug("injecting key", "code", code)
		loop.Post(func() {
			root.DispatchKey(scene.KeyEvent{Code: code})
		})
	}
}
