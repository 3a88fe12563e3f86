package io

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/netscene/pkg/config"
	"github.com/matzehuels/netscene/pkg/edit"
	"github.com/matzehuels/netscene/pkg/errors"
	"github.com/matzehuels/netscene/pkg/scene"
)

const sample = `{
  "version": 1,
  "settings": {"show_device_names": false, "grid": {"active": true, "x": 1, "z": 1, "angle": 15, "resize": 0.25}},
  "views": {
    "L2": {
      "base": [{"id": "b1", "name": "hall", "subtype": "f", "px": 0, "py": 0, "pz": 0, "sx": 4, "sy": 1, "sz": 4, "color1": 15658734, "color2": 0, "t1name": "wood.png", "tsx": 2, "tsy": 2}],
      "device": [
        {"id": "d1", "base": "b1", "type": "R", "name": "core1", "px": 0, "py": 0, "pz": 0, "color1": 255, "color2": 0, "config": {"vlans": {"10": "users"}}},
        {"id": "d2", "base": "b1", "type": "S", "px": 2, "py": 0, "pz": 1, "ry": 1.5, "sx": 1, "sy": 2, "sz": 1, "color1": 0, "color2": 0}
      ],
      "link": [{"id": "l1", "type": 1, "order": "XZ", "devs": [{"id": "d1", "data": {"function": "routing"}}, {"id": "d2"}], "linedata": {"points": [[1, 2, 0]], "color": 255, "weight": 0.05, "height": 0.5}, "phy": {"lag_name": "po1"}}],
      "text": [{"base": "b1", "text": "rack A", "px": -1, "py": 0, "pz": 1.5, "height": 0.4, "color": 0}],
      "symbol": [{"id": "s1", "base": "b1", "type": "F", "px": 1, "py": 0, "pz": -1, "color": 16711680, "flagcolor": 65280}]
    },
    "L3": {
      "line": [{"id": "ln1", "x1": 0, "y1": 0, "z1": 0, "x2": 3, "y2": 0, "z2": 0, "color": 0}]
    }
  }
}`

func load(t *testing.T, src string) (*Document, *edit.Editor) {
	t.Helper()
	doc, err := ReadJSON(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	ed := edit.New(scene.New())
	if err := Apply(doc, ed); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return doc, ed
}

func TestApply(t *testing.T) {
	_, ed := load(t, sample)
	s := ed.Scene()

	if got := s.L2.Len(); got != 6 {
		t.Errorf("L2 entities = %d, want 6", got)
	}
	if got := s.L3.Len(); got != 1 {
		t.Errorf("L3 entities = %d, want 1", got)
	}
	if ed.Settings().ShowDeviceNames || ed.Settings().Grid.X != 1 {
		t.Errorf("settings not applied: %+v", ed.Settings())
	}

	d2 := s.Find(scene.ViewL2, scene.KindDevice, "d2")
	if d2 == nil || d2.Parent() != s.Find(scene.ViewL2, scene.KindBase, "b1") {
		t.Fatal("d2 not attached to b1")
	}
	if d2.Entity.Scale.Y != 2 || d2.Entity.Rotation.Y != 1.5 {
		t.Errorf("d2 transform = %+v", d2.Entity)
	}

	l1 := s.Find(scene.ViewL2, scene.KindLink, "l1").Entity.LinkAttrs()
	if l1.Routing != scene.RoutingOrthogonal || l1.Order != "XZ" || len(l1.Joints) != 1 {
		t.Errorf("l1 attrs = %+v", l1)
	}
	if l1.Endpoints[0].Data["function"] != "routing" || l1.Phy["lag_name"] != "po1" {
		t.Error("opaque link data not carried")
	}
}

func TestApplyAssignsIDs(t *testing.T) {
	_, ed := load(t, sample)
	texts := ed.Scene().L2.Entities(scene.KindText)
	if len(texts) != 1 {
		t.Fatalf("got %d texts, want 1", len(texts))
	}
	if _, err := uuid.Parse(texts[0].ID); err != nil {
		t.Errorf("text id %q is not a UUID: %v", texts[0].ID, err)
	}
}

func TestRoundTrip(t *testing.T) {
	_, ed := load(t, sample)
	settings := ed.Settings()
	first := Snapshot(ed.Scene(), &settings)

	var buf bytes.Buffer
	if err := WriteJSON(first, &buf); err != nil {
		t.Fatal(err)
	}
	_, ed2 := load(t, buf.String())
	second := Snapshot(ed2.Scene(), &settings)

	var a, b bytes.Buffer
	if err := WriteJSON(first, &a); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(second, &b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("round trip changed the document:\n%s\nvs\n%s", a.String(), b.String())
	}
}

func TestSnapshotValues(t *testing.T) {
	_, ed := load(t, sample)
	doc := Snapshot(ed.Scene(), nil)
	l2 := doc.View(scene.ViewL2)

	if len(l2.Bases) != 1 || l2.Bases[0].Subtype != "f" || l2.Bases[0].TSX != 2 {
		t.Errorf("bases = %+v", l2.Bases)
	}
	if len(l2.Devices) != 2 || l2.Devices[1].PX != 2 || l2.Devices[1].PZ != 1 {
		t.Errorf("devices = %+v", l2.Devices)
	}
	if got := l2.Links[0].LineData.Points; len(got) != 1 || got[0] != [3]float64{1, 2, 0} {
		t.Errorf("link points = %v", got)
	}
	if ln := doc.View(scene.ViewL3).Lines; len(ln) != 1 || ln[0].X2 != 3 || ln[0].Radius != edit.DefaultLineRadius {
		t.Errorf("lines = %+v", ln)
	}
	if doc.Settings != nil {
		t.Error("nil settings should stay nil")
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"malformed", `{"views": `, errors.ErrCodeInvalidDocument},
		{"unknown view", `{"views": {"L7": {}}}`, errors.ErrCodeInvalidDocument},
		{"bad routing", `{"views": {"L2": {"link": [{"id": "l", "type": 3}]}}}`, errors.ErrCodeInvalidDocument},
		{"future version", `{"version": 99, "views": {}}`, errors.ErrCodeUnsupported},
		{"bad settings", `{"settings": {"grid": {"x": -1, "z": 1, "angle": 1, "resize": 1}}, "views": {}}`, errors.ErrCodeInvalidConfig},
		{"escaping texture dir", `{"settings": {"grid": {"x": 1, "z": 1, "angle": 1, "resize": 1}, "texture_dir": "../private"}, "views": {}}`, errors.ErrCodeInvalidPath},
		{"absolute templates", `{"settings": {"grid": {"x": 1, "z": 1, "angle": 1, "resize": 1}, "templates": "/etc/devices.toml"}, "views": {}}`, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.src))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing base", `{"views": {"L2": {"device": [{"id": "d1", "base": "nope", "type": "R"}]}}}`},
		{"missing endpoint", `{"views": {"L2": {"base": [{"id": "b1"}], "device": [{"id": "d1", "base": "b1"}], "link": [{"id": "l1", "devs": [{"id": "d1"}, {"id": "d9"}]}]}}}`},
		{"duplicate id", `{"views": {"L2": {"base": [{"id": "b1"}, {"id": "b1"}]}}}`},
		{"bad id", `{"views": {"L2": {"base": [{"id": "a\u0007b"}]}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadJSON(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			err = Apply(doc, edit.New(scene.New()))
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("Apply() error = %v, want INVALID_DOCUMENT", err)
			}
		})
	}
}

func TestImportExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagram.json")
	_, ed := load(t, sample)
	if err := ExportJSON(Snapshot(ed.Scene(), nil), path); err != nil {
		t.Fatal(err)
	}
	doc, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.View(scene.ViewL2).Len(); got != 6 {
		t.Errorf("imported L2 has %d entities, want 6", got)
	}

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func ExampleSnapshot() {
	ed := edit.New(scene.New())
	ed.AddBase(scene.ViewL2, edit.BaseSpec{ID: "b1"})
	ed.AddDevice(scene.ViewL2, edit.DeviceSpec{ID: "d1", Base: "b1", DeviceAttrs: scene.DeviceAttrs{Type: "R"}})

	settings := config.Default()
	doc := Snapshot(ed.Scene(), &settings)
	l2 := doc.View(scene.ViewL2)
	fmt.Println(doc.Version, len(l2.Bases), len(l2.Devices), l2.Devices[0].Base)
	// Output: 1 1 1 b1
}
