package config

import (
	"fmt"
	"regexp"
)

var envPlaceholder = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// LookupFunc resolves an environment variable name to its value. os.LookupEnv
// satisfies it; tests supply stubs.
type LookupFunc func(name string) (string, bool)

// ExpandEnvironment returns a copy of root with every ${NAME} occurrence in
// string leaves replaced by the value reported by lookup. The pass is
// fail-fast: the first unset variable aborts with an UnresolvedVariableError
// naming the variable and the dotted path of the value that referenced it.
// Non-string leaves pass through unchanged. Running the pass again over its
// own output is a no-op as long as substituted values contain no ${.
func ExpandEnvironment(root *Mapping, lookup LookupFunc) (*Mapping, error) {
	expanded, err := expandValue(root, "", lookup)
	if err != nil {
		return nil, err
	}
	return expanded.(*Mapping), nil
}

func expandValue(v any, path string, lookup LookupFunc) (any, error) {
	switch val := v.(type) {
	case *Mapping:
		out := NewMapping()
		for _, key := range val.keys {
			child, err := expandValue(val.values[key], joinPath(path, key), lookup)
			if err != nil {
				return nil, err
			}
			out.Set(key, child)
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			child, err := expandValue(item, fmt.Sprintf("%s[%d]", path, i), lookup)
			if err != nil {
				return nil, err
			}
			out[i] = child
		}
		return out, nil
	case string:
		return expandString(val, path, lookup)
	default:
		return v, nil
	}
}

func expandString(s, path string, lookup LookupFunc) (string, error) {
	var firstErr error
	expanded := envPlaceholder.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		value, ok := lookup(name)
		if !ok {
			if firstErr == nil {
				firstErr = &UnresolvedVariableError{Variable: name, Path: path}
			}
			return match
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return expanded, nil
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
