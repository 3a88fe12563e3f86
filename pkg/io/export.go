package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/config"
	"github.com/matzehuels/netscene/pkg/scene"
)

// WriteJSON encodes doc as indented JSON to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes doc to a file at path.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}

// Snapshot captures the entities of s in scene order. settings may be nil.
func Snapshot(s *scene.Scene, settings *config.Settings) *Document {
	doc := &Document{Version: Version, Settings: settings, Views: make(map[string]ViewData, len(scene.Views))}
	for _, v := range scene.Views {
		doc.Views[string(v)] = snapshotView(s.View(v))
	}
	return doc
}

func snapshotView(f *scene.Forest) ViewData {
	var vd ViewData
	for _, n := range f.Entities(scene.KindBase) {
		e, a := n.Entity, n.Entity.BaseAttrs()
		vd.Bases = append(vd.Bases, Base{
			ID:        e.ID,
			Name:      a.Name,
			Subtype:   string(a.Subtype),
			Placement: placement(e),
			Size:      size(e.Scale),
			Color1:    a.Color1,
			Color2:    a.Color2,
			T1Name:    a.Texture1,
			T2Name:    a.Texture2,
			TSX:       a.TexScale.X,
			TSY:       a.TexScale.Y,
		})
	}
	for _, n := range f.Entities(scene.KindDevice) {
		e, a := n.Entity, n.Entity.DeviceAttrs()
		vd.Devices = append(vd.Devices, Device{
			ID:        e.ID,
			Base:      e.Base,
			Type:      a.Type,
			Name:      a.Name,
			Placement: placement(e),
			Size:      size(e.Scale),
			Color1:    a.Color1,
			Color2:    a.Color2,
			IfNaming:  a.IfNaming,
			Config:    a.Config,
		})
	}
	for _, n := range f.Entities(scene.KindText) {
		e, a := n.Entity, n.Entity.TextAttrs()
		vd.Texts = append(vd.Texts, Text{
			ID:        e.ID,
			Base:      e.Base,
			Text:      a.Text,
			Placement: placement(e),
			Height:    a.Size,
			Depth:     a.Depth,
			Color:     a.Color,
		})
	}
	for _, n := range f.Entities(scene.KindSymbol) {
		e, a := n.Entity, n.Entity.SymbolAttrs()
		vd.Symbols = append(vd.Symbols, Symbol{
			ID:        e.ID,
			Base:      e.Base,
			Type:      a.Type,
			Placement: placement(e),
			Size:      size(e.Scale),
			Color:     a.Color,
			FlagColor: a.FlagColor,
		})
	}
	for _, n := range f.Entities(scene.KindLink) {
		e, a := n.Entity, n.Entity.LinkAttrs()
		l := Link{
			ID:    e.ID,
			Type:  int(a.Routing),
			Order: a.Order,
			Devs: [2]LinkEnd{
				{ID: a.Endpoints[0].DeviceID, Data: a.Endpoints[0].Data},
				{ID: a.Endpoints[1].DeviceID, Data: a.Endpoints[1].Data},
			},
			LineData: LineData{Color: a.Color, Weight: a.Weight, Height: a.Height},
			Phy:      a.Phy,
		}
		for _, j := range a.Joints {
			l.LineData.Points = append(l.LineData.Points, [3]float64{j.X, j.Y, j.Z})
		}
		vd.Links = append(vd.Links, l)
	}
	for _, n := range f.Entities(scene.KindLine) {
		e, a := n.Entity, n.Entity.LineAttrs()
		vd.Lines = append(vd.Lines, Line{
			ID: e.ID,
			X1: a.From.X, Y1: a.From.Y, Z1: a.From.Z,
			X2: a.To.X, Y2: a.To.Y, Z2: a.To.Z,
			Radius: a.Radius,
			Color:  a.Color,
		})
	}
	return vd
}

func placement(e *scene.Entity) Placement {
	return Placement{
		PX: e.Position.X, PY: e.Position.Y, PZ: e.Position.Z,
		RX: e.Rotation.X, RY: e.Rotation.Y, RZ: e.Rotation.Z,
	}
}

func size(s r3.Vec) Size { return Size{SX: s.X, SY: s.Y, SZ: s.Z} }
