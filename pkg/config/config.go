// Package config holds the editor settings shared by both views.
//
// Settings are loaded from TOML:
//
//	show_device_names = true
//	templates = "templates.toml"
//	texture_dir = "textures"
//
//	[grid]
//	active = true
//	x = 0.5
//	z = 0.5
//	angle = 15     # degrees
//	resize = 0.25
//
// Missing keys take the values of [Default]. Zero or negative grid steps are
// rejected by [Settings.Validate].
package config

import (
	"io"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netscene/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultGridX is the horizontal snap step along X.
	DefaultGridX = 0.5

	// DefaultGridZ is the horizontal snap step along Z.
	DefaultGridZ = 0.5

	// DefaultGridAngle is the rotation snap step in degrees.
	DefaultGridAngle = 15.0

	// DefaultGridResize is the resize snap step.
	DefaultGridResize = 0.25
)

// Grid configures snapping for edit operations.
type Grid struct {
	Active bool    `toml:"active" json:"active"`
	X      float64 `toml:"x" json:"x"`
	Z      float64 `toml:"z" json:"z"`
	Angle  float64 `toml:"angle" json:"angle"` // degrees
	Resize float64 `toml:"resize" json:"resize"`
}

// AngleRad returns the angular step in radians.
func (g Grid) AngleRad() float64 { return g.Angle * math.Pi / 180 }

// Settings is the global editor configuration.
type Settings struct {
	ShowDeviceNames bool   `toml:"show_device_names" json:"show_device_names"`
	Grid            Grid   `toml:"grid" json:"grid"`
	Templates       string `toml:"templates,omitempty" json:"templates,omitempty"`
	TextureDir      string `toml:"texture_dir,omitempty" json:"texture_dir,omitempty"`
}

// Default returns the settings an empty diagram starts with.
func Default() Settings {
	return Settings{
		ShowDeviceNames: true,
		Grid: Grid{
			Active: true,
			X:      DefaultGridX,
			Z:      DefaultGridZ,
			Angle:  DefaultGridAngle,
			Resize: DefaultGridResize,
		},
	}
}

// SetDefaults fills unset grid steps with their defaults.
func (s *Settings) SetDefaults() {
	if s.Grid.X == 0 {
		s.Grid.X = DefaultGridX
	}
	if s.Grid.Z == 0 {
		s.Grid.Z = DefaultGridZ
	}
	if s.Grid.Angle == 0 {
		s.Grid.Angle = DefaultGridAngle
	}
	if s.Grid.Resize == 0 {
		s.Grid.Resize = DefaultGridResize
	}
}

// Validate checks that every grid step is a positive finite number.
func (s Settings) Validate() error {
	steps := []struct {
		name string
		v    float64
	}{
		{"grid.x", s.Grid.X},
		{"grid.z", s.Grid.Z},
		{"grid.angle", s.Grid.Angle},
		{"grid.resize", s.Grid.Resize},
	}
	for _, st := range steps {
		if !(st.v > 0) || math.IsInf(st.v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a positive number", st.name)
		}
	}
	return nil
}

// Load decodes TOML settings from r over the defaults and validates them.
func Load(r io.Reader) (Settings, error) {
	s := Default()
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode settings")
	}
	s.SetDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadFile reads settings from a TOML file.
func LoadFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings file not found: %s", path)
		}
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open settings %s", path)
	}
	defer f.Close()
	return Load(f)
}
