// Package config loads popup profiles: YAML documents that describe a
// keymap, a transition, a container pool and a surface size, for tools
// that drive the engine from configuration rather than code.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/popup/pkg/errors"
	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/popup"
)

// SchemaVersion is the current profile schema major version.
const SchemaVersion = "v1"

// Config is the raw shape of a profile document.
type Config struct {
	Version    string           `yaml:"version,omitempty"`
	Keys       KeysConfig       `yaml:"keys"`
	Transition TransitionConfig `yaml:"transition"`
	Pool       PoolConfig       `yaml:"pool"`
	Surface    SurfaceConfig    `yaml:"surface"`
}

// KeysConfig overrides the dismiss key bindings. Zero values keep the
// defaults.
type KeysConfig struct {
	Escape int `yaml:"escape,omitempty"`
	Back   int `yaml:"back,omitempty"`
}

// TransitionConfig selects and tunes the transition.
type TransitionConfig struct {
	// Kind is one of "none", "fade" or "slide". Empty means "fade".
	Kind string `yaml:"kind,omitempty"`
	// In and Out are Go duration strings ("150ms", "0.2s"). Empty keeps
	// the kind's defaults.
	In  string `yaml:"in,omitempty"`
	Out string `yaml:"out,omitempty"`
	// Direction applies to slides: "down", "up", "left" or "right".
	Direction string `yaml:"direction,omitempty"`
	// Background is a scrim color: "#RGB", "#RRGGBB", "#RRGGBBAA" or a
	// named color.
	Background string `yaml:"background,omitempty"`
}

// PoolConfig sizes the container pool.
type PoolConfig struct {
	// MaxIdle caps the idle containers kept for reuse. Nil means unbounded,
	// zero disables pooling.
	MaxIdle *int `yaml:"max_idle,omitempty"`
}

// SurfaceConfig sizes the surface a simulator mounts popups into. Zero
// values keep the tool's defaults.
type SurfaceConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// Resolved is a profile turned into engine values.
type Resolved struct {
	Keymap     popup.Keymap
	Transition popup.Transition
	Pool       *popup.Pool
	Surface    graphics.Size
}

// Load reads and resolves a profile file.
func Load(path string) (*Resolved, error) {
	const op = "config.Load"
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(op, errors.KindConfig, fmt.Errorf("read profile: %w", err))
	}
	return Parse(data)
}

// Parse resolves a profile document.
func Parse(data []byte) (*Resolved, error) {
	const op = "config.Parse"
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.E(op, errors.KindConfig, fmt.Errorf("parse profile: %w", err))
	}
	return cfg.Resolve()
}

// Resolve validates the raw document and produces engine values.
func (c *Config) Resolve() (*Resolved, error) {
	const op = "config.Resolve"

	version := strings.TrimSpace(c.Version)
	if version == "" {
		version = SchemaVersion
	}
	if !semver.IsValid(version) {
		return nil, errors.Errorf(op, errors.KindConfig, "invalid profile version %q", c.Version)
	}
	if semver.Major(version) != SchemaVersion {
		return nil, errors.Errorf(op, errors.KindConfig,
			"unsupported profile version %q (want major %s)", c.Version, SchemaVersion)
	}

	km := popup.DefaultKeymap()
	if c.Keys.Escape != 0 {
		km.Escape = c.Keys.Escape
	}
	if c.Keys.Back != 0 {
		km.Back = c.Keys.Back
	}

	tr, err := c.Transition.resolve()
	if err != nil {
		return nil, err
	}

	var pool *popup.Pool
	switch {
	case c.Pool.MaxIdle == nil:
		pool = popup.NewPool()
	case *c.Pool.MaxIdle < 0:
		return nil, errors.Errorf(op, errors.KindConfig, "pool.max_idle must not be negative")
	case *c.Pool.MaxIdle > 0:
		pool = popup.NewPoolCap(*c.Pool.MaxIdle)
	}

	if c.Surface.Width < 0 || c.Surface.Height < 0 {
		return nil, errors.Errorf(op, errors.KindConfig, "surface dimensions must not be negative")
	}

	return &Resolved{
		Keymap:     km,
		Transition: tr,
		Pool:       pool,
		Surface:    graphics.Size{Width: c.Surface.Width, Height: c.Surface.Height},
	}, nil
}

func (t *TransitionConfig) resolve() (popup.Transition, error) {
	const op = "config.Resolve"

	background := popup.DefaultBackground
	if t.Background != "" {
		col, err := graphics.ParseColor(t.Background)
		if err != nil {
			return nil, errors.E(op, errors.KindConfig, err)
		}
		background = col
	}

	kind := strings.ToLower(strings.TrimSpace(t.Kind))
	switch kind {
	case "none":
		if t.In != "" || t.Out != "" {
			return nil, errors.Errorf(op, errors.KindConfig, "transition %q takes no durations", kind)
		}
		if t.Direction != "" {
			return nil, errors.Errorf(op, errors.KindConfig, "transition %q takes no direction", kind)
		}
		return popup.None{Background: background}, nil

	case "", "fade":
		if t.Direction != "" {
			return nil, errors.Errorf(op, errors.KindConfig, "transition %q takes no direction", kind)
		}
		fade := popup.DefaultFade()
		fade.Background = background
		if err := overrideDuration(&fade.In, t.In, "transition.in"); err != nil {
			return nil, err
		}
		if err := overrideDuration(&fade.Out, t.Out, "transition.out"); err != nil {
			return nil, err
		}
		return fade, nil

	case "slide":
		slide := popup.DefaultSlide()
		slide.Background = background
		if err := overrideDuration(&slide.In, t.In, "transition.in"); err != nil {
			return nil, err
		}
		if err := overrideDuration(&slide.Out, t.Out, "transition.out"); err != nil {
			return nil, err
		}
		if t.Direction != "" {
			dir, err := parseDirection(t.Direction)
			if err != nil {
				return nil, err
			}
			slide.Direction = dir
		}
		return slide, nil

	default:
		return nil, errors.Errorf(op, errors.KindConfig, "unknown transition kind %q", t.Kind)
	}
}

func overrideDuration(dst *time.Duration, raw, field string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return errors.E("config.Resolve", errors.KindConfig, fmt.Errorf("%s: %w", field, err))
	}
	if d < 0 {
		return errors.Errorf("config.Resolve", errors.KindConfig, "%s must not be negative", field)
	}
	*dst = d
	return nil
}

func parseDirection(raw string) (popup.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "down":
		return popup.DirectionDown, nil
	case "up":
		return popup.DirectionUp, nil
	case "left":
		return popup.DirectionLeft, nil
	case "right":
		return popup.DirectionRight, nil
	default:
		return 0, errors.Errorf("config.Resolve", errors.KindConfig, "unknown slide direction %q", raw)
	}
}
