package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Source describes one configuration layer. When Data is non-nil the layer is
// parsed from it directly; otherwise Path is read from disk. Required layers
// fail the load when absent, optional ones are skipped silently.
type Source struct {
	Name     string
	Path     string
	Data     []byte
	Required bool
}

// Option adjusts how Load resolves the layered sources.
type Option func(*loadOptions)

type loadOptions struct {
	lookup LookupFunc
}

// WithEnvLookup overrides the environment lookup used by the eager ${NAME}
// interpolation pass (primarily for tests).
func WithEnvLookup(lookup LookupFunc) Option {
	return func(o *loadOptions) {
		o.lookup = lookup
	}
}

// Resolved is the immutable result of folding all configuration layers and
// interpolating environment placeholders. It is safe to share between
// concurrent readers.
type Resolved struct {
	root *Mapping
}

// Load parses every source in precedence order (lowest first), deep-merges
// them, and runs the eager environment interpolation pass. The first source
// is always treated as required. Load either fully succeeds or fails without
// side effects.
func Load(sources []Source, opts ...Option) (*Resolved, error) {
	options := loadOptions{lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(&options)
	}

	if len(sources) == 0 {
		return nil, errors.New("at least one configuration source is required")
	}

	docs := make([]*Document, 0, len(sources))
	for i, src := range sources {
		doc, err := loadSource(src, src.Required || i == 0)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		docs = append(docs, doc)
	}

	merged := MergeDocuments(docs...)
	expanded, err := ExpandEnvironment(merged, options.lookup)
	if err != nil {
		return nil, err
	}

	return &Resolved{root: expanded}, nil
}

// LoadFiles resolves file sources in precedence order. The first path is the
// required default layer; the remaining paths are optional overlays.
func LoadFiles(paths []string, opts ...Option) (*Resolved, error) {
	sources := make([]Source, len(paths))
	for i, path := range paths {
		sources[i] = Source{Path: path, Required: i == 0}
	}
	return Load(sources, opts...)
}

func loadSource(src Source, required bool) (*Document, error) {
	if src.Data != nil {
		name := src.Name
		if name == "" {
			name = "inline"
		}
		return ParseDocument(name, src.Data)
	}

	doc, err := LoadFile(src.Path)
	if err != nil {
		var missing *SourceMissingError
		if errors.As(err, &missing) && !required {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

// Root returns a deep copy of the resolved tree.
func (r *Resolved) Root() *Mapping {
	return r.root.Clone()
}

// Lookup traverses nested mappings by the given key sequence. It returns a
// KeyError naming the deepest path segment that could not be resolved. The
// returned value is shared with the snapshot and must be treated read-only;
// use Mapping or StringSlice for defensive copies.
func (r *Resolved) Lookup(keys ...string) (any, error) {
	var current any = r.root
	for i, key := range keys {
		m, ok := current.(*Mapping)
		if !ok {
			return nil, &KeyError{Path: strings.Join(keys[:i+1], ".")}
		}
		value, ok := m.Get(key)
		if !ok {
			return nil, &KeyError{Path: strings.Join(keys[:i+1], ".")}
		}
		current = value
	}
	return current, nil
}

// Get looks up a value by a dotted key path, e.g.
// "preferences.graphics.figure_saving.format". Keys that themselves contain
// dots must be addressed through Lookup instead.
func (r *Resolved) Get(path string) (any, error) {
	return r.Lookup(strings.Split(path, ".")...)
}

// GetDefault looks up a dotted key path and falls back to the supplied value
// when any segment is absent.
func (r *Resolved) GetDefault(path string, fallback any) any {
	value, err := r.Get(path)
	if err != nil {
		return fallback
	}
	return value
}

// String looks up a dotted key path and coerces the scalar result to a
// string.
func (r *Resolved) String(path string) (string, error) {
	value, err := r.Get(path)
	if err != nil {
		return "", err
	}
	s, err := AsString(value)
	if err != nil {
		return "", fmt.Errorf("configuration value at %s: %w", path, err)
	}
	return s, nil
}

// StringSlice looks up a dotted key path whose value is a sequence of
// scalars and returns it as a string slice in document order.
func (r *Resolved) StringSlice(path string) ([]string, error) {
	value, err := r.Get(path)
	if err != nil {
		return nil, err
	}
	out, err := AsStringSlice(value)
	if err != nil {
		return nil, fmt.Errorf("configuration value at %s: %w", path, err)
	}
	return out, nil
}

// Mapping looks up a dotted key path whose value is a nested mapping and
// returns a deep copy of it.
func (r *Resolved) Mapping(path string) (*Mapping, error) {
	value, err := r.Get(path)
	if err != nil {
		return nil, err
	}
	m, ok := value.(*Mapping)
	if !ok {
		return nil, fmt.Errorf("configuration value at %s is %T, not a mapping", path, value)
	}
	return m.Clone(), nil
}
