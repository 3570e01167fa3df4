package config

import "fmt"

// SourceMissingError reports that a required configuration source does not
// exist on disk. Optional overlay layers are skipped instead of producing it.
type SourceMissingError struct {
	Path string
}

func (e *SourceMissingError) Error() string {
	return fmt.Sprintf("required configuration source %s does not exist", e.Path)
}

// ParseError reports a configuration source that could not be parsed into a
// tree of mappings, sequences, and scalars.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse configuration source %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnresolvedVariableError reports a ${NAME} placeholder whose environment
// variable is unset at load time. Path is the dotted location of the value
// that referenced it.
type UnresolvedVariableError struct {
	Variable string
	Path     string
}

func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("environment variable %s referenced at %s is not set", e.Variable, e.Path)
}

// KeyError reports a lookup for a key path that is absent from the resolved
// configuration and for which no default was supplied. Path names the deepest
// segment that failed to resolve.
type KeyError struct {
	Path string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("configuration key %s not found", e.Path)
}

// TemplateVariableError reports a deferred {name} template placeholder with
// no matching entry in the caller-supplied variables. Variable is the first
// missing name encountered.
type TemplateVariableError struct {
	Variable string
	Template string
}

func (e *TemplateVariableError) Error() string {
	return fmt.Sprintf("template variable %s has no value in %q", e.Variable, e.Template)
}
