// Package registry provides typed accessors over a resolved configuration
// snapshot for the three recurring lookup shapes of the toolkit: resource
// path registries partitioned by category (e.g. per-genome region databases),
// the logical-name-to-command executables table, and per-data-type sample
// input file templates. All accessors are pure lookups; whether an executable
// path is actually runnable is the caller's concern.
package registry
