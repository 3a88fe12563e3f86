package templates

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/mesh"
)

// Unknown is the type code of the fallback template.
const Unknown = "UNKNOWN"

// Template is a read-only parametric device shape.
type Template struct {
	Name        string            `json:"name,omitempty" toml:"name"`
	Vertices    [][][3]float64    `json:"v" toml:"v"`
	Faces       [][][3]int        `json:"f" toml:"f"`
	UVs         [][][3][2]float64 `json:"uv" toml:"uv"`
	BaseScale   [3]float64        `json:"base_scale" toml:"base_scale"`
	FlatNormals bool              `json:"flat_normals" toml:"flat_normals"`
	Textures    [2]string         `json:"texture" toml:"texture"`
}

// Surfaces returns the number of surfaces the template defines (0 to 2).
func (t *Template) Surfaces() int { return len(t.Vertices) }

// Shading returns the normal policy of the template.
func (t *Template) Shading() mesh.Shading {
	if t.FlatNormals {
		return mesh.Flat
	}
	return mesh.Smooth
}

// Scaled returns the vertices of surface i multiplied by size and the base
// scale, together with its faces and UVs. Missing surfaces return nil lists.
func (t *Template) Scaled(i int, size r3.Vec) ([]r3.Vec, []mesh.Triangle, []mesh.FaceUV) {
	if i < 0 || i >= len(t.Vertices) {
		return nil, nil, nil
	}
	vs := make([]r3.Vec, len(t.Vertices[i]))
	for j, v := range t.Vertices[i] {
		vs[j] = r3.Vec{
			X: v[0] * size.X * t.BaseScale[0],
			Y: v[1] * size.Y * t.BaseScale[1],
			Z: v[2] * size.Z * t.BaseScale[2],
		}
	}
	fs := make([]mesh.Triangle, len(t.Faces[i]))
	for j, f := range t.Faces[i] {
		fs[j] = mesh.Triangle(f)
	}
	uvs := make([]mesh.FaceUV, len(t.UVs[i]))
	for j, uv := range t.UVs[i] {
		uvs[j] = mesh.FaceUV{
			r2.Vec{X: uv[0][0], Y: uv[0][1]},
			r2.Vec{X: uv[1][0], Y: uv[1][1]},
			r2.Vec{X: uv[2][0], Y: uv[2][1]},
		}
	}
	return vs, fs, uvs
}

// Validate checks that the template is internally consistent.
func (t *Template) Validate() error {
	if len(t.Vertices) > 2 {
		return errors.New(errors.ErrCodeInvalidTemplate, "%s: at most 2 surfaces allowed, got %d", t.Name, len(t.Vertices))
	}
	if len(t.Faces) != len(t.Vertices) || len(t.UVs) != len(t.Vertices) {
		return errors.New(errors.ErrCodeInvalidTemplate, "%s: v, f and uv must list the same surfaces", t.Name)
	}
	for i := range t.Vertices {
		if len(t.UVs[i]) != len(t.Faces[i]) {
			return errors.New(errors.ErrCodeInvalidTemplate, "%s: surface %d has %d faces but %d uv triples", t.Name, i, len(t.Faces[i]), len(t.UVs[i]))
		}
		for j, f := range t.Faces[i] {
			for _, idx := range f {
				if idx < 0 || idx >= len(t.Vertices[i]) {
					return errors.New(errors.ErrCodeInvalidTemplate, "%s: surface %d face %d references vertex %d", t.Name, i, j, idx)
				}
			}
		}
	}
	for _, s := range t.BaseScale {
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return errors.New(errors.ErrCodeInvalidTemplate, "%s: base_scale must be positive, got %v", t.Name, t.BaseScale)
		}
	}
	for _, tex := range t.Textures {
		if tex == "" {
			continue
		}
		if err := errors.ValidateTextureName(tex); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "%s: texture", t.Name)
		}
	}
	return nil
}

// Library maps device type codes to templates.
type Library struct {
	templates map[string]*Template
}

// NewLibrary returns a library that only contains the fallback template.
func NewLibrary() *Library {
	return &Library{templates: map[string]*Template{Unknown: unknownTemplate()}}
}

// Add registers t under typ, replacing any previous entry.
func (l *Library) Add(typ string, t *Template) error {
	if typ == "" {
		return errors.New(errors.ErrCodeInvalidTemplate, "template type cannot be empty")
	}
	if t.Name == "" {
		t.Name = typ
	}
	if err := t.Validate(); err != nil {
		return err
	}
	l.templates[typ] = t
	return nil
}

// Has reports whether typ is registered.
func (l *Library) Has(typ string) bool {
	_, ok := l.templates[typ]
	return ok
}

// Lookup returns the template for typ, or the fallback template.
func (l *Library) Lookup(typ string) *Template {
	if t, ok := l.templates[typ]; ok {
		return t
	}
	return l.templates[Unknown]
}

// Types returns the registered type codes in sorted order.
func (l *Library) Types() []string {
	types := make([]string, 0, len(l.templates))
	for k := range l.templates {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}
