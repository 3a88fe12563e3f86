package render

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/netscene/pkg/errors"
)

// DirTextures serves textures from a directory. Each Load checks the file in
// its own goroutine and keeps the raw bytes for the renderer.
type DirTextures struct {
	Dir string

	mu   sync.RWMutex
	data map[string][]byte
}

// NewDirTextures returns a provider rooted at dir.
func NewDirTextures(dir string) *DirTextures {
	return &DirTextures{Dir: dir, data: make(map[string][]byte)}
}

// Load implements TextureProvider.
func (p *DirTextures) Load(name string, done func(string, error)) {
	go func() {
		done(name, p.load(name))
	}()
}

func (p *DirTextures) load(name string) error {
	if err := errors.ValidateTextureName(name); err != nil {
		return err
	}
	b, err := os.ReadFile(filepath.Join(p.Dir, name))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeFileNotFound, "texture %q not found in %s", name, p.Dir)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "read texture %q", name)
	}
	p.mu.Lock()
	p.data[name] = b
	p.mu.Unlock()
	return nil
}

// Bytes returns the contents of a loaded texture.
func (p *DirTextures) Bytes(name string) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	b, ok := p.data[name]
	return b, ok
}
