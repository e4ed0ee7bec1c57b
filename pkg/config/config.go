// Package config holds the static view and layout configuration of the
// viewer, with TOML loading on top of documented defaults.
//
// A config file only needs the keys it changes:
//
//	[view]
//	pick_radius = 6
//	xlim = [-3.0, 3.0]
//
//	[layout]
//	engine = "fdp"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/quiverview/pkg/errors"
)

// Default view values.
const (
	DefaultPickRadius    = 4.0
	DefaultNodeSize      = 8.0
	DefaultArrowShrink   = 7.0
	DefaultArcStep       = 0.35
	DefaultLoopAngle     = 40.0
	DefaultLoopDragScale = 1.7
	DefaultLoopSamples   = 50
)

// Default layout values.
const (
	EngineSpring = "spring"

	DefaultEngine     = EngineSpring
	DefaultIterations = 50
	DefaultSeed       = uint64(42)
)

// View configures routing, drawing and hit-testing. Pixel quantities are in
// renderer pixels (braille dots for the terminal canvas).
type View struct {
	PickRadius    float64    `toml:"pick_radius"`
	NodeSize      float64    `toml:"node_size"`
	ArrowShrink   float64    `toml:"arrow_shrink"`
	ArcStep       float64    `toml:"arc_step"`
	LoopAngle     float64    `toml:"loop_angle_deg"`
	LoopDragScale float64    `toml:"loop_drag_scale"`
	LoopSamples   int        `toml:"loop_samples"`
	XLim          [2]float64 `toml:"xlim"`
	YLim          [2]float64 `toml:"ylim"`
}

// Layout selects and tunes the layout provider.
type Layout struct {
	Engine     string `toml:"engine"`
	Iterations int    `toml:"iterations"`
	Seed       uint64 `toml:"seed"`
}

// Config is the complete configuration file.
type Config struct {
	View   View   `toml:"view"`
	Layout Layout `toml:"layout"`
}

// Default returns the documented defaults.
func Default() Config {
	return Config{
		View:   DefaultView(),
		Layout: DefaultLayout(),
	}
}

// DefaultView returns the default view settings.
func DefaultView() View {
	return View{
		PickRadius:    DefaultPickRadius,
		NodeSize:      DefaultNodeSize,
		ArrowShrink:   DefaultArrowShrink,
		ArcStep:       DefaultArcStep,
		LoopAngle:     DefaultLoopAngle,
		LoopDragScale: DefaultLoopDragScale,
		LoopSamples:   DefaultLoopSamples,
		XLim:          [2]float64{-2, 2},
		YLim:          [2]float64{-2, 2},
	}
}

// DefaultLayout returns the default layout settings.
func DefaultLayout() Layout {
	return Layout{
		Engine:     DefaultEngine,
		Iterations: DefaultIterations,
		Seed:       DefaultSeed,
	}
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a config file. An empty path falls back to the user config
// file if it exists, and to the defaults otherwise.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := UserPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(cfg Config, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// UserPath returns the per-user config file location
// ($XDG_CONFIG_HOME/quiverview/config.toml or ~/.config/quiverview/config.toml).
func UserPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "quiverview", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quiverview", "config.toml"), nil
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if err := c.View.Validate(); err != nil {
		return err
	}
	return c.Layout.Validate()
}

// Validate checks the view settings.
func (v View) Validate() error {
	switch {
	case v.PickRadius < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "pick_radius must be >= 0, got %v", v.PickRadius)
	case v.NodeSize <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "node_size must be > 0, got %v", v.NodeSize)
	case v.ArrowShrink < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "arrow_shrink must be >= 0, got %v", v.ArrowShrink)
	case v.ArcStep <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "arc_step must be > 0, got %v", v.ArcStep)
	case v.LoopAngle <= 0 || v.LoopAngle >= 180:
		return errors.New(errors.ErrCodeInvalidConfig, "loop_angle_deg must be in (0, 180), got %v", v.LoopAngle)
	case v.LoopDragScale <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "loop_drag_scale must be > 0, got %v", v.LoopDragScale)
	case v.LoopSamples < 2:
		return errors.New(errors.ErrCodeInvalidConfig, "loop_samples must be >= 2, got %d", v.LoopSamples)
	case v.XLim[0] >= v.XLim[1]:
		return errors.New(errors.ErrCodeInvalidConfig, "xlim must be increasing, got %v", v.XLim)
	case v.YLim[0] >= v.YLim[1]:
		return errors.New(errors.ErrCodeInvalidConfig, "ylim must be increasing, got %v", v.YLim)
	}
	return nil
}

// Validate checks the layout settings. The engine name is checked by the
// layout package, which owns the list of providers.
func (l Layout) Validate() error {
	if l.Engine == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "layout engine must not be empty")
	}
	if l.Iterations < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must be >= 1, got %d", l.Iterations)
	}
	return nil
}
