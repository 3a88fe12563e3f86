package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/netscene/pkg/mesh"
	"github.com/matzehuels/netscene/pkg/render"
	"github.com/matzehuels/netscene/pkg/scene"
)

// Item is the world-space mesh of one render node.
type Item struct {
	Kind     scene.Kind
	ID       string
	Role     scene.Role
	Index    int
	Material scene.Material
	Mesh     *mesh.Buffer
}

// Name returns a stable object name such as "link_l1_segment_2".
func (it Item) Name() string {
	name := string(it.Kind) + "_" + it.ID
	if it.Role != scene.RoleEntity {
		name += "_" + string(it.Role)
	}
	if it.Role == scene.RoleSegment || it.Role == scene.RoleJoint {
		name += fmt.Sprintf("_%d", it.Index)
	}
	return name
}

// Collect returns the visible meshes of f in walk order, transformed to
// world space. Invisible nodes hide their whole subtree.
func Collect(f *scene.Forest) []Item {
	var items []Item
	f.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Tagged() && !n.Mesh.Empty() {
			items = append(items, Item{
				Kind:     n.Kind,
				ID:       n.ID,
				Role:     n.Role,
				Index:    n.Index,
				Material: n.Material,
				Mesh:     n.Mesh.Transformed(n.World()),
			})
		}
		return true
	})
	return items
}

type meshDoc struct {
	View    scene.View   `json:"view"`
	Camera  *cameraJSON  `json:"camera,omitempty"`
	Objects []objectJSON `json:"objects"`
}

type cameraJSON struct {
	Projection string     `json:"projection"`
	Position   [3]float64 `json:"position"`
	Rotation   [3]float64 `json:"rotation"`
	Order      string     `json:"order,omitempty"`
	FOV        float64    `json:"fov,omitempty"`
	Size       float64    `json:"size,omitempty"`
	Near       float64    `json:"near"`
	Far        float64    `json:"far"`
}

type objectJSON struct {
	Name     string          `json:"name"`
	Kind     scene.Kind      `json:"kind"`
	ID       string          `json:"id"`
	Role     scene.Role      `json:"role,omitempty"`
	Index    int             `json:"index,omitempty"`
	Color    string          `json:"color"`
	Texture  string          `json:"texture,omitempty"`
	Shader   int             `json:"shader"`
	Shading  string          `json:"shading"`
	Vertices [][3]float64    `json:"vertices"`
	Faces    []mesh.Triangle `json:"faces"`
	UVs      [][6]float64    `json:"uvs,omitempty"`
	Normals  [][9]float64    `json:"normals,omitempty"`
}

// WriteMeshJSON writes the collected meshes of f as JSON. cam may be nil.
func WriteMeshJSON(w io.Writer, f *scene.Forest, cam *render.Camera) error {
	doc := meshDoc{View: f.View(), Objects: []objectJSON{}}
	if cam != nil {
		doc.Camera = &cameraJSON{
			Projection: cam.Projection.String(),
			Position:   [3]float64{cam.Position.X, cam.Position.Y, cam.Position.Z},
			Rotation:   [3]float64{cam.Rotation.X, cam.Rotation.Y, cam.Rotation.Z},
			Order:      string(cam.Rotation.Order),
			FOV:        cam.FOV,
			Size:       cam.Size,
			Near:       cam.Near,
			Far:        cam.Far,
		}
		if cam.Projection == render.Orthographic {
			doc.Camera.FOV = 0
		} else {
			doc.Camera.Size = 0
		}
	}
	for _, it := range Collect(f) {
		doc.Objects = append(doc.Objects, object(it))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode meshes: %w", err)
	}
	return nil
}

func object(it Item) objectJSON {
	b := it.Mesh
	o := objectJSON{
		Name:     it.Name(),
		Kind:     it.Kind,
		ID:       it.ID,
		Role:     it.Role,
		Index:    it.Index,
		Color:    fmt.Sprintf("#%06x", it.Material.Color&0xFFFFFF),
		Texture:  it.Material.Texture,
		Shader:   int(it.Material.Shader),
		Shading:  b.Shading.String(),
		Vertices: make([][3]float64, len(b.Vertices)),
		Faces:    b.Faces,
	}
	for i, v := range b.Vertices {
		o.Vertices[i] = [3]float64{v.X, v.Y, v.Z}
	}
	if len(b.UVs) == len(b.Faces) {
		o.UVs = make([][6]float64, len(b.UVs))
		for i, uv := range b.UVs {
			o.UVs[i] = [6]float64{uv[0].X, uv[0].Y, uv[1].X, uv[1].Y, uv[2].X, uv[2].Y}
		}
	}
	if len(b.Normals) == len(b.Faces) {
		o.Normals = make([][9]float64, len(b.Normals))
		for i, n := range b.Normals {
			o.Normals[i] = [9]float64{n[0].X, n[0].Y, n[0].Z, n[1].X, n[1].Y, n[1].Z, n[2].X, n[2].Y, n[2].Z}
		}
	}
	return o
}

// WriteOBJ writes the collected meshes of f as a Wavefront OBJ file with one
// object per render node. Texture coordinates are emitted per face corner
// when the mesh has them.
func WriteOBJ(w io.Writer, f *scene.Forest) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# netscene %s\n", f.View())

	vBase, vtBase := 1, 1
	for _, it := range Collect(f) {
		b := it.Mesh
		fmt.Fprintf(bw, "o %s\n", it.Name())
		if it.Material.Texture != "" {
			fmt.Fprintf(bw, "# texture %s\n", it.Material.Texture)
		}
		r, g, bl := it.Material.RGB()
		for _, v := range b.Vertices {
			fmt.Fprintf(bw, "v %g %g %g %.4f %.4f %.4f\n", v.X, v.Y, v.Z, r, g, bl)
		}

		textured := len(b.UVs) == len(b.Faces)
		if textured {
			for _, uv := range b.UVs {
				for _, c := range uv {
					fmt.Fprintf(bw, "vt %g %g\n", c.X, c.Y)
				}
			}
		}
		if b.Shading == mesh.Flat {
			bw.WriteString("s off\n")
		} else {
			bw.WriteString("s 1\n")
		}
		for i, face := range b.Faces {
			if textured {
				t := vtBase + 3*i
				fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n",
					vBase+face[0], t, vBase+face[1], t+1, vBase+face[2], t+2)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", vBase+face[0], vBase+face[1], vBase+face[2])
			}
		}

		vBase += len(b.Vertices)
		if textured {
			vtBase += 3 * len(b.Faces)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}
