package textutil

import "strings"

// SplitMulti splits text on every separator and returns the trimmed,
// non-empty parts in order. With no usable separators the trimmed text is
// returned as the only part.
func SplitMulti(text string, separators []string) []string {
	parts := []string{text}
	for _, sep := range separators {
		if sep == "" {
			continue
		}
		next := make([]string, 0, len(parts))
		for _, part := range parts {
			next = append(next, strings.Split(part, sep)...)
		}
		parts = next
	}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ContainsAny reports whether text contains at least one non-empty separator.
func ContainsAny(text string, separators []string) bool {
	for _, sep := range separators {
		if sep != "" && strings.Contains(text, sep) {
			return true
		}
	}
	return false
}
