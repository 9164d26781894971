package util

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSlot is returned when a template names a slot that has no value.
var ErrUnknownSlot = errors.New("unknown template slot")

// ErrMalformedTemplate is returned for unbalanced braces.
var ErrMalformedTemplate = errors.New("malformed template")

// RenderTemplate fills {name} slots from values. Literal braces are written
// as {{ and }}. A format spec or conversion after the name ({name:spec},
// {name!r}) is ignored. This lives in internal to avoid committing to public
// API stability prematurely.
func RenderTemplate(text string, values map[string]string) (string, error) {
	if !strings.ContainsAny(text, "{}") { // fast path: no slots
		return text, nil
	}

	var sb strings.Builder
	sb.Grow(len(text))

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				sb.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{' at offset %d", ErrMalformedTemplate, i)
			}
			field := text[i+1 : i+1+end]
			name := field
			if cut := strings.IndexAny(field, ":!"); cut >= 0 {
				name = field[:cut]
			}
			v, ok := values[name]
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrUnknownSlot, name)
			}
			sb.WriteString(v)
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				sb.WriteByte('}')
				i++
				continue
			}
			return "", fmt.Errorf("%w: single '}' at offset %d", ErrMalformedTemplate, i)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String(), nil
}
