// Package io reads and writes diagram documents as JSON.
//
// # Overview
//
// A document holds both views of a diagram plus optional global settings.
// It is the persistence format of the application layer: [Apply] replays a
// document through an edit.Editor to build a scene, and [Snapshot] captures
// a scene back into a document, so import → edit → export round-trips.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "settings": {"show_device_names": true, "grid": {"active": true, "x": 0.5, "z": 0.5, "angle": 15, "resize": 0.25}},
//	  "views": {
//	    "L2": {
//	      "base":   [{"id": "b1", "sx": 4, "sy": 1, "sz": 4, "color1": 15658734, "t1name": "wood.png"}],
//	      "device": [{"id": "d1", "base": "b1", "type": "R", "name": "core1", "px": 0, "pz": 0}],
//	      "link":   [{"id": "l1", "type": 0, "devs": [{"id": "d1"}, {"id": "d2"}], "linedata": {"points": [[1, 2, 0]], "color": 255, "weight": 0.025, "height": 0.5}}]
//	    },
//	    "L3": {}
//	  }
//	}
//
// Position fields of base-attached entities (devices, texts, symbols) are
// relative to the top of their base. Entities without an "id" receive a
// random UUID when applied. Keys the scene does not interpret ("config" on
// devices, "phy" on links, "data" on link endpoints) are carried verbatim.
package io
