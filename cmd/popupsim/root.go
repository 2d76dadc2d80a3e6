package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/popup/pkg/config"
	"github.com/go-drift/popup/pkg/errors"
	"github.com/go-drift/popup/pkg/graphics"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	profile    *config.Resolved
	globalOpts struct {
		verbose     bool
		profilePath string
	}
	logger *slog.Logger
)

// defaultSurface is the surface size used when the profile leaves it unset.
var defaultSurface = graphics.Size{Width: 800, Height: 600}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "popupsim",
	Short: "Headless popup lifecycle simulator",
	Long: `popupsim drives the popup engine against a headless surface.

It opens a modal popup with a configured transition, injects scripted
pointer and keyboard input, and reports how the popup was dismissed.
Profiles (YAML) select the keymap, transition, pool and surface size.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		errors.SetHandler(&errors.LogHandler{Verbose: globalOpts.verbose})

		if globalOpts.profilePath == "" {
			var err error
			profile, err = (&config.Config{}).Resolve()
			return err
		}
		var err error
		profile, err = config.Load(globalOpts.profilePath)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		logger.Debug("profile loaded", "path", globalOpts.profilePath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.profilePath, "profile", "",
		"Path to a profile YAML file (defaults apply if empty)")
}

func setupLogger() {
	level := slog.LevelInfo
	if globalOpts.verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// surfaceSize resolves the profile's surface size with the tool default.
func surfaceSize() graphics.Size {
	if profile.Surface.IsEmpty() {
		return defaultSurface
	}
	return profile.Surface
}
