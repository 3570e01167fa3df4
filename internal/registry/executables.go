package registry

import (
	"github.com/seqtools/ngsconf/internal/config"
)

// Executables maps logical tool names to the command or path used to invoke
// them. Lookups carry no side effects; resolving whether a command is
// runnable belongs to the code that spawns the external tool.
type Executables struct {
	snapshot *config.Resolved
}

// NewExecutables wraps a resolved snapshot.
func NewExecutables(snapshot *config.Resolved) *Executables {
	return &Executables{snapshot: snapshot}
}

// Command returns the command string registered for a logical tool name.
func (e *Executables) Command(name string) (string, error) {
	value, err := e.snapshot.Lookup("executables", name)
	if err != nil {
		return "", err
	}
	return config.AsString(value)
}

// Names returns every registered logical name in document order.
func (e *Executables) Names() ([]string, error) {
	m, err := e.snapshot.Mapping("executables")
	if err != nil {
		return nil, err
	}
	return m.Keys(), nil
}

// All returns a copy of the whole executables table.
func (e *Executables) All() (*config.Mapping, error) {
	return e.snapshot.Mapping("executables")
}
