package route

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/netscene/pkg/geom"
)

// Segment is one straight run of a link.
type Segment struct {
	From r3.Vec
	To   r3.Vec
}

// Length returns the segment length.
func (s Segment) Length() float64 { return r3.Norm(r3.Sub(s.To, s.From)) }

// Axis returns the single axis the segment runs along, or false if it is
// diagonal or degenerate.
func (s Segment) Axis() (geom.Axis, bool) {
	d := r3.Sub(s.To, s.From)
	found, axis := 0, geom.AxisX
	for _, a := range []geom.Axis{geom.AxisX, geom.AxisY, geom.AxisZ} {
		if geom.Component(d, a) != 0 {
			found++
			axis = a
		}
	}
	return axis, found == 1
}

// Path is a routed polyline: its segments in order plus the points where a
// joint sphere is drawn.
type Path struct {
	Segments []Segment
	Joints   []r3.Vec
}

// Points returns the polyline vertices, starting at the first segment's
// origin.
func (p Path) Points() []r3.Vec {
	if len(p.Segments) == 0 {
		return nil
	}
	pts := make([]r3.Vec, 0, len(p.Segments)+1)
	pts = append(pts, p.Segments[0].From)
	for _, s := range p.Segments {
		pts = append(pts, s.To)
	}
	return pts
}

// Length returns the total length of the path.
func (p Path) Length() float64 {
	var l float64
	for _, s := range p.Segments {
		l += s.Length()
	}
	return l
}

func (p *Path) segment(from, to r3.Vec) {
	if from == to {
		return
	}
	p.Segments = append(p.Segments, Segment{From: from, To: to})
}

// Freeform routes start → joints... → end.
func Freeform(start, end r3.Vec, joints []r3.Vec) Path {
	var p Path
	cur := start
	for _, j := range joints {
		p.segment(cur, j)
		p.Joints = append(p.Joints, j)
		cur = j
	}
	p.segment(cur, end)
	return p
}

// Orthogonal routes start → end along the axes in order. Only the first two
// characters of order are considered; characters other than X, Y and Z (in
// either case) are skipped.
func Orthogonal(start, end r3.Vec, order string) Path {
	var p Path
	cur := start
	for i, c := range []rune(strings.ToUpper(order)) {
		if i == 2 {
			break
		}
		axis, ok := geom.ParseAxis(c)
		if !ok {
			continue
		}
		target := geom.Component(end, axis)
		if geom.Component(cur, axis) == target {
			continue
		}
		next := geom.WithComponent(cur, axis, target)
		p.segment(cur, next)
		if next != end {
			p.Joints = append(p.Joints, next)
		}
		cur = next
	}
	p.segment(cur, end)
	return p
}
