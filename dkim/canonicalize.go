package dkim

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// canonicalHeader is one header occurrence in relaxed canonical form:
// lower-cased name, unfolded value with whitespace runs collapsed to a
// single space and no leading or trailing whitespace.
type canonicalHeader struct {
	name  string
	value string
}

// line renders the header as it participates in the signable text.
func (h canonicalHeader) line() string {
	return h.name + ":" + h.value
}

// splitMessage splits a raw RFC 5322 message at the first blank line,
// accepting both CRLF and LF line endings. The header block keeps the
// terminator of its last line; the blank line itself belongs to neither
// part. A message without a blank line has an empty body.
func splitMessage(message string) (header, body string) {
	if rest, ok := strings.CutPrefix(message, "\r\n"); ok {
		return "", rest
	}
	if rest, ok := strings.CutPrefix(message, "\n"); ok {
		return "", rest
	}
	for i := 0; i < len(message); i++ {
		if message[i] != '\n' {
			continue
		}
		rest := message[i+1:]
		if after, ok := strings.CutPrefix(rest, "\r\n"); ok {
			return message[:i+1], after
		}
		if after, ok := strings.CutPrefix(rest, "\n"); ok {
			return message[:i+1], after
		}
	}
	return message, ""
}

// canonicalizeHeaders applies relaxed header canonicalization (RFC 6376
// Section 3.4.2) to a header block and selects the signable headers.
// Entries come back in message order; a listed header occurring more than
// once yields one entry per occurrence.
func canonicalizeHeaders(block string) ([]canonicalHeader, error) {
	unfolded := unfold(block)

	var headers []canonicalHeader
	for _, line := range strings.Split(unfolded, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		idx := strings.IndexByte(line, ':')
		if idx == -1 {
			return nil, fmt.Errorf("%w: header line without colon: %q", ErrMalformedMessage, line)
		}

		name := strings.ToLower(strings.TrimRight(line[:idx], " \t"))
		if !signableSet[name] {
			continue
		}

		value := strings.TrimSpace(collapseWhitespace(line[idx+1:]))
		headers = append(headers, canonicalHeader{name: name, value: value})
	}

	return headers, nil
}

// unfold removes header folding: a line terminator followed by whitespace
// becomes a single space, merging the continuation into the logical line.
func unfold(s string) string {
	s = strings.ReplaceAll(s, "\r\n\t", " ")
	s = strings.ReplaceAll(s, "\r\n ", " ")
	s = strings.ReplaceAll(s, "\n\t", " ")
	s = strings.ReplaceAll(s, "\n ", " ")
	return s
}

// collapseWhitespace compresses every run of spaces and tabs to one space.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWS := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' {
			if !prevWS {
				b.WriteByte(' ')
				prevWS = true
			}
		} else {
			b.WriteByte(c)
			prevWS = false
		}
	}
	return b.String()
}

// canonicalizeBody applies relaxed body canonicalization (RFC 6376
// Section 3.4.3): trailing whitespace stripped from each line, whitespace
// runs collapsed, trailing empty lines removed, and exactly one final
// CRLF appended. An empty body canonicalizes to a single CRLF.
func canonicalizeBody(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		line = collapseWhitespace(line)
		lines[i] = strings.TrimRight(line, " ")
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return "\r\n"
	}
	return strings.Join(lines, "\r\n") + "\r\n"
}

// hashBody returns the base64-encoded SHA-256 digest of the canonical
// body, the bh= tag value.
func hashBody(body string) string {
	sum := sha256.Sum256([]byte(canonicalizeBody(body)))
	return base64.StdEncoding.EncodeToString(sum[:])
}
