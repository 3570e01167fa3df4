package registry

import (
	"github.com/seqtools/ngsconf/internal/config"
)

// SampleFiles resolves per-sample input file locations from the deferred
// {var} path templates declared under sample_input_files. Templates stay
// unresolved in the snapshot; Render completes one per call site with
// caller-supplied values such as data_dir and sample_name.
type SampleFiles struct {
	snapshot *config.Resolved
}

// NewSampleFiles wraps a resolved snapshot.
func NewSampleFiles(snapshot *config.Resolved) *SampleFiles {
	return &SampleFiles{snapshot: snapshot}
}

// DataTypes returns the data types with declared input file templates, in
// document order.
func (s *SampleFiles) DataTypes() ([]string, error) {
	m, err := s.snapshot.Mapping("sample_input_files")
	if err != nil {
		return nil, err
	}
	return m.Keys(), nil
}

// Template returns the raw, still-deferred template registered for one data
// type and file kind.
func (s *SampleFiles) Template(dataType, name string) (string, error) {
	value, err := s.snapshot.Lookup("sample_input_files", dataType, name)
	if err != nil {
		return "", err
	}
	return config.AsString(value)
}

// Render completes a template with the supplied variables. A missing
// variable surfaces as a config.TemplateVariableError naming it.
func (s *SampleFiles) Render(dataType, name string, vars map[string]string) (string, error) {
	template, err := s.Template(dataType, name)
	if err != nil {
		return "", err
	}
	return config.FormatTemplate(template, vars)
}
