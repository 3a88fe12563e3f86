package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/edit"
	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/scene"
)

// ReadJSON decodes and validates a document from r. It checks the version,
// the view names and the link routing types; entity references are checked
// when the document is applied. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ImportJSON reads the document file at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "document not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Validate checks the parts of doc that do not need a scene.
func (doc *Document) Validate() error {
	if doc.Version > Version {
		return errors.New(errors.ErrCodeUnsupported, "document version %d is newer than %d", doc.Version, Version)
	}
	for name, vd := range doc.Views {
		if _, err := scene.ParseView(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "views")
		}
		for _, l := range vd.Links {
			if l.Type != int(scene.RoutingFreeform) && l.Type != int(scene.RoutingOrthogonal) {
				return errors.New(errors.ErrCodeInvalidDocument, "%s link %q: unknown routing type %d", name, l.ID, l.Type)
			}
		}
	}
	if doc.Settings != nil {
		if err := doc.Settings.Validate(); err != nil {
			return err
		}
		// Documents may only name relative paths.
		for _, p := range []string{doc.Settings.Templates, doc.Settings.TextureDir} {
			if p == "" {
				continue
			}
			if err := errors.ValidatePath(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// View returns the data of view v, or an empty ViewData.
func (doc *Document) View(v scene.View) ViewData {
	for name, vd := range doc.Views {
		if pv, err := scene.ParseView(name); err == nil && pv == v {
			return vd
		}
	}
	return ViewData{}
}

// Apply builds doc into the editor's scene. Settings are applied first,
// then per view: bases, devices, texts, symbols, links and lines. It stops
// at the first entity the editor rejects and returns an
// INVALID_DOCUMENT error naming it.
func Apply(doc *Document, ed *edit.Editor) error {
	if doc.Settings != nil {
		ed.SetGrid(doc.Settings.Grid)
		ed.SetShowDeviceNames(doc.Settings.ShowDeviceNames)
	}
	views := make([]scene.View, 0, len(doc.Views))
	for name := range doc.Views {
		v, err := scene.ParseView(name)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDocument, err, "views")
		}
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i] < views[j] })

	for _, v := range views {
		if err := applyView(ed, v, doc.View(v)); err != nil {
			return err
		}
	}
	return nil
}

func applyView(ed *edit.Editor, v scene.View, vd ViewData) error {
	fail := func(kind scene.Kind, id string, err error) error {
		return errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s %s %q", v, kind, id)
	}

	for _, b := range vd.Bases {
		_, err := ed.AddBase(v, edit.BaseSpec{
			ID:       b.ID,
			Position: b.position(),
			Rotation: b.rotation(),
			Size:     b.size(),
			BaseAttrs: scene.BaseAttrs{
				Name:     b.Name,
				Subtype:  scene.ParseSubtype(b.Subtype),
				Color1:   b.Color1,
				Color2:   b.Color2,
				Texture1: b.T1Name,
				Texture2: b.T2Name,
				TexScale: r2.Vec{X: b.TSX, Y: b.TSY},
			},
		})
		if err != nil {
			return fail(scene.KindBase, b.ID, err)
		}
	}

	for _, d := range vd.Devices {
		_, err := ed.AddDevice(v, edit.DeviceSpec{
			ID:       d.ID,
			Base:     d.Base,
			Position: d.position(),
			Rotation: d.rotation(),
			Size:     d.size(),
			DeviceAttrs: scene.DeviceAttrs{
				Type:     d.Type,
				Name:     d.Name,
				Color1:   d.Color1,
				Color2:   d.Color2,
				IfNaming: append([]string(nil), d.IfNaming...),
				Config:   d.Config,
			},
		})
		if err != nil {
			return fail(scene.KindDevice, d.ID, err)
		}
	}

	for _, t := range vd.Texts {
		_, err := ed.AddText(v, edit.TextSpec{
			ID:        t.ID,
			Base:      t.Base,
			Position:  t.position(),
			Rotation:  t.rotation(),
			TextAttrs: scene.TextAttrs{Text: t.Text, Size: t.Height, Depth: t.Depth, Color: t.Color},
		})
		if err != nil {
			return fail(scene.KindText, t.ID, err)
		}
	}

	for _, s := range vd.Symbols {
		_, err := ed.AddSymbol(v, edit.SymbolSpec{
			ID:          s.ID,
			Base:        s.Base,
			Position:    s.position(),
			Rotation:    s.rotation(),
			Size:        s.size(),
			SymbolAttrs: scene.SymbolAttrs{Type: s.Type, Color: s.Color, FlagColor: s.FlagColor},
		})
		if err != nil {
			return fail(scene.KindSymbol, s.ID, err)
		}
	}

	for _, l := range vd.Links {
		joints := make([]r3.Vec, len(l.LineData.Points))
		for i, p := range l.LineData.Points {
			joints[i] = r3.Vec{X: p[0], Y: p[1], Z: p[2]}
		}
		_, err := ed.AddLink(v, edit.LinkSpec{
			ID: l.ID,
			LinkAttrs: scene.LinkAttrs{
				Endpoints: [2]scene.Endpoint{
					{DeviceID: l.Devs[0].ID, Data: l.Devs[0].Data},
					{DeviceID: l.Devs[1].ID, Data: l.Devs[1].Data},
				},
				Routing: scene.Routing(l.Type),
				Order:   l.Order,
				Color:   l.LineData.Color,
				Weight:  l.LineData.Weight,
				Height:  l.LineData.Height,
				Joints:  joints,
				Phy:     l.Phy,
			},
		})
		if err != nil {
			return fail(scene.KindLink, l.ID, err)
		}
	}

	for _, l := range vd.Lines {
		_, err := ed.AddLine(v, edit.LineSpec{
			ID: l.ID,
			LineAttrs: scene.LineAttrs{
				From:   r3.Vec{X: l.X1, Y: l.Y1, Z: l.Z1},
				To:     r3.Vec{X: l.X2, Y: l.Y2, Z: l.Z2},
				Radius: l.Radius,
				Color:  l.Color,
			},
		})
		if err != nil {
			return fail(scene.KindLine, l.ID, err)
		}
	}
	return nil
}

func (p Placement) position() r3.Vec { return r3.Vec{X: p.PX, Y: p.PY, Z: p.PZ} }
func (p Placement) rotation() r3.Vec { return r3.Vec{X: p.RX, Y: p.RY, Z: p.RZ} }
func (s Size) size() r3.Vec          { return r3.Vec{X: s.SX, Y: s.SY, Z: s.SZ} }
