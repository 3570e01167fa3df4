package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is one parsed configuration source. It is immutable once parsed;
// merging and interpolation always produce new trees.
type Document struct {
	name string
	root *Mapping
}

// Name identifies the source the document was parsed from (a file path or a
// caller-supplied label for inline data).
func (d *Document) Name() string {
	return d.name
}

// Root returns a deep copy of the document tree.
func (d *Document) Root() *Mapping {
	return d.root.Clone()
}

// ParseDocument parses a single YAML source into a Document. The top level
// must be a mapping. Returns a ParseError on malformed input.
func ParseDocument(name string, data []byte) (*Document, error) {
	var root Mapping
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Source: name, Err: err}
	}
	if root.values == nil {
		root = *NewMapping()
	}
	return &Document{name: name, root: &root}, nil
}

// LoadFile reads and parses one configuration file. A non-existent file is
// reported as a SourceMissingError so callers can distinguish absent optional
// layers from malformed ones.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceMissingError{Path: path}
		}
		return nil, fmt.Errorf("read configuration source %s: %w", path, err)
	}
	return ParseDocument(path, data)
}
