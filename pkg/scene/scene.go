package scene

import "sync/atomic"

// Scene owns both views of a diagram and the redraw flag.
type Scene struct {
	L2 *Forest
	L3 *Forest

	dirty atomic.Bool
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{L2: NewForest(ViewL2), L3: NewForest(ViewL3)}
}

// View returns the forest of v, or nil for an unknown view.
func (s *Scene) View(v View) *Forest {
	switch v {
	case ViewL2:
		return s.L2
	case ViewL3:
		return s.L3
	}
	return nil
}

// Find returns the entity node of (v, kind, id), or nil.
func (s *Scene) Find(v View, kind Kind, id string) *Node {
	f := s.View(v)
	if f == nil {
		return nil
	}
	return f.Find(kind, id)
}

// MarkDirty requests a redraw. Safe for concurrent use.
func (s *Scene) MarkDirty() { s.dirty.Store(true) }

// Dirty reports whether a redraw is pending. Safe for concurrent use.
func (s *Scene) Dirty() bool { return s.dirty.Load() }

// ClearDirty clears the redraw flag and reports whether it was set.
func (s *Scene) ClearDirty() bool { return s.dirty.Swap(false) }
