package jsondoc

import "strings"

// EscapePathSegment escapes characters that have special meaning in
// query paths so they are treated as a literal member name. Useful when
// keys contain dots, wildcards, or query operators.
func EscapePathSegment(seg string) string {
	if seg == "" {
		return ""
	}
	needsEscape := false
	for i := 0; i < len(seg); i++ {
		if shouldEscapePathChar(seg[i]) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return seg
	}
	var b strings.Builder
	b.Grow(len(seg) * 2)
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if shouldEscapePathChar(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// BuildEscapedPath joins literal segments using dot notation after
// escaping each one.
// Example: BuildEscapedPath("config", "foo.bar", "*key") -> "config.foo\\.bar.\\*key".
func BuildEscapedPath(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = EscapePathSegment(s)
	}
	return strings.Join(escaped, ".")
}

func shouldEscapePathChar(c byte) bool {
	switch c {
	case '\\', '.', '|', '*', '?', '#', '@':
		return true
	}
	return false
}
