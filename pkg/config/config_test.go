package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/netscene/pkg/errors"
)

func TestDefault(t *testing.T) {
	s := Default()
	if !s.ShowDeviceNames || !s.Grid.Active {
		t.Error("labels and grid should be on by default")
	}
	if s.Grid.X != .5 || s.Grid.Z != .5 || s.Grid.Resize != .25 {
		t.Errorf("grid = %+v", s.Grid)
	}
	if got := s.Grid.AngleRad(); math.Abs(got-math.Pi/12) > 1e-12 {
		t.Errorf("AngleRad() = %v, want pi/12", got)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Settings
		wantErr errors.Code
	}{
		{
			name:  "empty uses defaults",
			input: "",
			want:  Default(),
		},
		{
			name: "partial grid",
			input: `show_device_names = false
[grid]
active = false
x = 1.0
`,
			want: Settings{Grid: Grid{X: 1, Z: DefaultGridZ, Angle: DefaultGridAngle, Resize: DefaultGridResize}},
		},
		{
			name:  "paths",
			input: "templates = \"t.toml\"\ntexture_dir = \"tex\"\n",
			want: func() Settings {
				s := Default()
				s.Templates, s.TextureDir = "t.toml", "tex"
				return s
			}(),
		},
		{
			name:    "negative step",
			input:   "[grid]\nresize = -1.0\n",
			wantErr: errors.ErrCodeInvalidConfig,
		},
		{
			name:    "bad toml",
			input:   "[grid\n",
			wantErr: errors.ErrCodeInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Load() error = %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netscene.toml")
	if err := os.WriteFile(path, []byte("[grid]\nangle = 45.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if s.Grid.Angle != 45 {
		t.Errorf("angle = %v, want 45", s.Grid.Angle)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadFile(missing) error = %v", err)
	}
}
