package config

import (
	"errors"
	"testing"
)

func stubLookup(env map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}
}

func TestExpandEnvironment(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "test", `
preferences:
  projects_dir: /scratch/${USER}/projects
  combined: ${ROOT}/${USER}
  dpi: 300
  literal: "{sample_name}.bam"
paths:
  - ${ROOT}/db
`)

	lookup := stubLookup(map[string]string{"USER": "arendt", "ROOT": "/data"})
	expanded, err := ExpandEnvironment(doc.Root(), lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefs, _ := expanded.Get("preferences")
	m := prefs.(*Mapping)
	if v, _ := m.Get("projects_dir"); v != "/scratch/arendt/projects" {
		t.Fatalf("unexpected expansion: %v", v)
	}
	if v, _ := m.Get("combined"); v != "/data/arendt" {
		t.Fatalf("expected every placeholder in one string expanded, got %v", v)
	}
	if v, _ := m.Get("dpi"); v != 300 {
		t.Fatalf("expected non-string leaf to pass through, got %v", v)
	}
	if v, _ := m.Get("literal"); v != "{sample_name}.bam" {
		t.Fatalf("expected deferred template to stay untouched, got %v", v)
	}

	paths, _ := expanded.Get("paths")
	if paths.([]any)[0] != "/data/db" {
		t.Fatalf("expected sequence element expansion, got %v", paths)
	}
}

func TestExpandEnvironmentFailsFastOnUnsetVariable(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "test", "preferences:\n  dir: /scratch/${MISSING_VAR}/x\n")

	_, err := ExpandEnvironment(doc.Root(), stubLookup(nil))
	if err == nil {
		t.Fatalf("expected error for unset variable")
	}

	var unresolved *UnresolvedVariableError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedVariableError, got %T", err)
	}
	if unresolved.Variable != "MISSING_VAR" {
		t.Fatalf("expected error to name MISSING_VAR, got %s", unresolved.Variable)
	}
	if unresolved.Path != "preferences.dir" {
		t.Fatalf("expected error to name the config path, got %s", unresolved.Path)
	}
}

func TestExpandEnvironmentIdempotent(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "test", "dir: /scratch/${USER}\nkeep: plain value\n")
	lookup := stubLookup(map[string]string{"USER": "arendt"})

	once, err := ExpandEnvironment(doc.Root(), lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := ExpandEnvironment(once, stubLookup(nil))
	if err != nil {
		t.Fatalf("second pass should be a no-op, got error: %v", err)
	}

	if v, _ := twice.Get("dir"); v != "/scratch/arendt" {
		t.Fatalf("second pass changed the tree: %v", v)
	}
}
