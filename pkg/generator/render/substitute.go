package render

import (
	"bytes"
	"fmt"
	"regexp"
)

// binarySniffLen is how many leading bytes are inspected for a NUL byte.
const binarySniffLen = 8000

var placeholderPattern = regexp.MustCompile(`<%=\s*([A-Za-z0-9._-]+)\s*%>`)

// Values are the answers substituted into text files, keyed by prompt name.
// A value is a string or a bool.
type Values map[string]any

// String returns the substitution form of key, or "" when key is absent.
func (v Values) String(key string) string {
	value, ok := v[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		if typed {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(typed)
	}
}

// Substitute replaces every `<%= key %>` placeholder in text.
func Substitute(text string, values Values) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		return values.String(key)
	})
}

// IsBinary reports whether data has a NUL byte within its first 8000 bytes.
func IsBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
