package registry

import (
	"fmt"

	"github.com/seqtools/ngsconf/internal/config"
)

// Resources exposes the named registries under the resources section, where
// each tool owns an arbitrarily nested tree of paths, lists, and strings.
type Resources struct {
	snapshot *config.Resolved
}

// NewResources wraps a resolved snapshot.
func NewResources(snapshot *config.Resolved) *Resources {
	return &Resources{snapshot: snapshot}
}

// Tool returns a copy of the registry subtree declared for one tool.
func (r *Resources) Tool(name string) (*config.Mapping, error) {
	value, err := r.snapshot.Lookup("resources", name)
	if err != nil {
		return nil, err
	}
	m, ok := value.(*config.Mapping)
	if !ok {
		return nil, fmt.Errorf("resources.%s is %T, not a mapping", name, value)
	}
	return m.Clone(), nil
}

// Lookup returns the raw value stored under resources.<tool>.<keys...>.
func (r *Resources) Lookup(tool string, keys ...string) (any, error) {
	full := append([]string{"resources", tool}, keys...)
	return r.snapshot.Lookup(full...)
}

// PathList returns an ordered list of file-system paths registered under
// resources.<tool>.<keys...>, e.g. the region databases for one genome
// assembly.
func (r *Resources) PathList(tool string, keys ...string) ([]string, error) {
	value, err := r.Lookup(tool, keys...)
	if err != nil {
		return nil, err
	}
	return config.AsStringSlice(value)
}

// Path returns a single file-system path registered under
// resources.<tool>.<keys...>, e.g. a motif database for one organism.
func (r *Resources) Path(tool string, keys ...string) (string, error) {
	value, err := r.Lookup(tool, keys...)
	if err != nil {
		return "", err
	}
	return config.AsString(value)
}
