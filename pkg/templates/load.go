package templates

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/netscene/pkg/errors"
)

// LoadJSON reads a JSON template document and merges it over [Builtin].
func LoadJSON(r io.Reader) (*Library, error) {
	var doc map[string]*Template
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode template json")
	}
	return merge(doc)
}

// LoadTOML reads a TOML template document and merges it over [Builtin].
func LoadTOML(r io.Reader) (*Library, error) {
	var doc map[string]*Template
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "decode template toml")
	}
	return merge(doc)
}

// LoadFile reads a template document, choosing the format by extension
// (.toml, anything else is JSON).
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadTOML(f)
	}
	return LoadJSON(f)
}

func merge(doc map[string]*Template) (*Library, error) {
	l := Builtin()
	types := make([]string, 0, len(doc))
	for typ := range doc {
		types = append(types, typ)
	}
	sort.Strings(types)
	for _, typ := range types {
		t := doc[typ]
		if t == nil {
			return nil, errors.New(errors.ErrCodeInvalidTemplate, "%s: empty template", typ)
		}
		if err := l.Add(typ, t); err != nil {
			return nil, err
		}
	}
	return l, nil
}
