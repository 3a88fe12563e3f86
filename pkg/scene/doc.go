// Package scene holds the retained scene graph of a network diagram.
//
// # Overview
//
// A [Scene] owns two independent views, [ViewL2] (logical) and [ViewL3]
// (physical), each a [Forest] of [Node] trees. Bases, links and lines are
// roots; devices, texts and symbols hang below the base that owns them. Every
// entity root node carries its [Entity]: the kind, id, placement and a
// kind-specific attribute record.
//
// Below the entity root sit the generated render nodes: the two paired
// surfaces of bases and devices, device name labels, cable segments and
// joints of links, and symbol parts. They carry the same kind and id tags so
// picking can map any hit back to its entity.
//
// # Lookup
//
// [Forest.Find] resolves (kind, id) through a hash index that is maintained
// on insert, reparent and removal. Ids are unique per (view, kind); inserting
// a second entity with the same key fails with [ErrDuplicateID]. Relationship
// queries ([Forest.LinksOfDevice], [Forest.LinksOfBase]) scan link roots in
// scene order.
//
// # Placement
//
// For devices, texts and symbols [Entity.Position] stores the X and Z of the
// node within its base and the Y offset above the base top; the node's local
// Y is base height + offset. World matrices are composed on demand from the
// local transforms up the parent chain, so moving a base moves everything it
// owns without touching the children.
//
// # Attributes
//
// [Attributes] is a closed union: [BaseAttrs], [DeviceAttrs], [LinkAttrs],
// [TextAttrs], [SymbolAttrs] and [LineAttrs]. Network configuration the scene
// does not interpret is kept in [Metadata] values.
//
// # Concurrency
//
// A Scene is owned by a single goroutine. The only exception is the redraw
// flag ([Scene.MarkDirty]), which is atomic so asynchronous texture loaders
// can request a redraw.
package scene
