package dkim

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"unicode/utf8"
)

// Signer produces DKIM-Signature headers for raw messages under one
// signing identity. A Signer holds no mutable state: the same value may
// be used from multiple goroutines, and independent messages may be
// signed concurrently.
type Signer struct {
	// Identity is the resolved signing identity. Required.
	Identity SigningIdentity
}

// Sign signs a complete RFC 5322 message (headers and body, CRLF or LF
// line endings) and returns the DKIM-Signature header as a single
// unfolded line, without a trailing terminator.
//
// Any error prevents a signature from being emitted; a partially
// computed signature is never returned.
func (s *Signer) Sign(message []byte) (string, error) {
	if err := s.Identity.validate(); err != nil {
		return "", err
	}
	if !utf8.Valid(message) {
		return "", fmt.Errorf("%w: message is not valid UTF-8", ErrMalformedMessage)
	}

	headerBlock, body := splitMessage(string(message))
	headers, err := canonicalizeHeaders(headerBlock)
	if err != nil {
		return "", err
	}

	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = h.name
	}

	tags := signatureTags{
		domain:   s.Identity.Domain,
		selector: s.Identity.Selector,
		signTime: timeNow().Unix(),
		bodyHash: hashBody(body),
		headers:  names,
	}

	digest := sha256.Sum256([]byte(signableText(headers, tags)))
	signature, err := rsa.SignPKCS1v15(cryptoRand, s.Identity.Key, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}

	return tags.render(base64.StdEncoding.EncodeToString(signature)), nil
}
