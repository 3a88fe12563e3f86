package edit

import (
	"time"

	"github.com/matzehuels/netscene/pkg/scene"
)

// Delete removes an entity. Deleting a device also deletes its links;
// deleting a base deletes everything on it along with the links of its
// devices. Deleting an absent entity does nothing.
func (ed *Editor) Delete(v scene.View, kind scene.Kind, id string) {
	f, n := ed.lookup("delete", v, kind, id)
	start := time.Now()
	for n != nil {
		switch kind {
		case scene.KindDevice:
			for _, l := range f.LinksOfDevice(id) {
				f.Remove(l)
			}
		case scene.KindBase:
			for _, l := range f.LinksOfBase(n) {
				f.Remove(l)
			}
		}
		f.Remove(n)
		ed.done("delete", n, start)
		n = f.Find(kind, id)
	}
}
