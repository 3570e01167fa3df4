package config

import "strings"

// FormatTemplate completes the deferred {name} placeholders of a template
// string with caller-supplied values. This is the per-call-site counterpart
// of the eager ${NAME} environment pass: ${...} occurrences are copied
// through untouched, and a placeholder with no matching variable fails with a
// TemplateVariableError naming the first missing variable. Braces that do not
// form a well-formed {name} placeholder are treated as literal text.
func FormatTemplate(template string, vars map[string]string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(template); {
		c := template[i]
		if c == '$' && i+1 < len(template) && template[i+1] == '{' {
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				b.WriteString(template[i:])
				break
			}
			b.WriteString(template[i : i+end+1])
			i += end + 1
			continue
		}
		if c == '{' {
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				b.WriteString(template[i:])
				break
			}
			name := template[i+1 : i+end]
			if !isPlaceholderName(name) {
				b.WriteString(template[i : i+end+1])
				i += end + 1
				continue
			}
			value, ok := vars[name]
			if !ok {
				return "", &TemplateVariableError{Variable: name, Template: template}
			}
			b.WriteString(value)
			i += end + 1
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), nil
}

func isPlaceholderName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
