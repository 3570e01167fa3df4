// Package defaults ships the built-in default configuration document inside
// the binary. It is always the required lowest-precedence layer; user and
// project files only overlay it.
package defaults

import (
	_ "embed"

	"github.com/seqtools/ngsconf/internal/config"
)

//go:embed default.yaml
var raw []byte

// YAML returns a copy of the built-in default configuration document.
func YAML() []byte {
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

// Source returns the built-in defaults as the required lowest-precedence
// configuration layer.
func Source() config.Source {
	return config.Source{Name: "builtin-defaults", Data: YAML(), Required: true}
}
