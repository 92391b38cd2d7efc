// Package utils contains small helpers shared across quill packages.
package utils

import "unicode/utf8"

// ContainsNonASCII checks if a string contains any non-ASCII characters
// (bytes > 127).
func ContainsNonASCII(s string) bool {
	for _, v := range s {
		if v >= utf8.RuneSelf {
			return true
		}
	}
	return false
}

// EqualFoldASCII reports whether a and b are equal under ASCII
// case-folding. Header field names are ASCII, so this avoids the Unicode
// tables of strings.EqualFold on the hot lookup path.
func EqualFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
