package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/render"
	"github.com/matzehuels/netscene/pkg/scene"
)

// Format names an artifact format.
type Format string

const (
	FormatJSON Format = "json"
	FormatOBJ  Format = "obj"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatOBJ, FormatDOT, FormatSVG}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown format %q", s)
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Mesh reports whether f is written from meshes rather than topology.
func (f Format) Mesh() bool { return f == FormatJSON || f == FormatOBJ }

// Sink is a [render.Renderer] that writes each rendered frame to W in a mesh
// format.
type Sink struct {
	Format Format
	W      io.Writer
	Frames int
}

// NewSink returns a sink writing format to w.
func NewSink(format Format, w io.Writer) *Sink {
	return &Sink{Format: format, W: w}
}

// Render implements [render.Renderer].
func (s *Sink) Render(f *scene.Forest, cam render.Camera, _ render.Viewport) error {
	var err error
	switch s.Format {
	case FormatJSON:
		err = WriteMeshJSON(s.W, f, &cam)
	case FormatOBJ:
		err = WriteOBJ(s.W, f)
	default:
		return errors.New(errors.ErrCodeUnsupported, "%s is not a mesh format", s.Format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", s.Format, err)
	}
	s.Frames++
	return nil
}

var _ render.Renderer = (*Sink)(nil)
