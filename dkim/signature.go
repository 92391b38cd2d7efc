package dkim

import (
	"strconv"
	"strings"
)

// signatureTags is the fixed-order DKIM tag set of one signature, built
// in full before signing. The b= value is supplied at render time so the
// placeholder form used for signing never escapes this package.
type signatureTags struct {
	domain   string
	selector string
	signTime int64
	bodyHash string
	headers  []string
}

// value renders the tag list as the header value, tags in the fixed order
// v, a, c, d, s, t, bh, h, b and joined with "; ". An empty signature
// renders the signable form ending in "b=".
func (t signatureTags) value(signature string) string {
	tags := []string{
		"v=1",
		"a=" + Algorithm,
		"c=" + Canonicalization,
		"d=" + t.domain,
		"s=" + t.selector,
		"t=" + strconv.FormatInt(t.signTime, 10),
		"bh=" + t.bodyHash,
		"h=" + strings.Join(t.headers, ":"),
		"b=" + signature,
	}
	return strings.Join(tags, "; ")
}

// signableText builds the exact byte sequence that is signed: the
// canonical header lines in message order, then the signature header
// itself in canonical form with an empty b= tag. Lines are joined with
// CRLF and there is no terminator after the last line.
func signableText(headers []canonicalHeader, tags signatureTags) string {
	lines := make([]string, 0, len(headers)+1)
	for _, h := range headers {
		lines = append(lines, h.line())
	}
	lines = append(lines, "dkim-signature:"+tags.value(""))
	return strings.Join(lines, "\r\n")
}

// render produces the final header including the base64 signature.
func (t signatureTags) render(signature string) string {
	return "DKIM-Signature: " + t.value(signature)
}
