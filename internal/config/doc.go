// Package config implements hierarchical configuration resolution for the
// toolkit. Layered YAML documents are folded lowest precedence first with
// deep-merge semantics (mappings union recursively, scalars and sequences
// replace), environment placeholders of the form ${NAME} are interpolated
// eagerly at load time, and deferred {name} path templates are completed per
// call site with caller-supplied values. The resolved tree is immutable and
// exposed through dotted-path lookups; Store holds the active snapshot and
// swaps it atomically on reload.
package config
