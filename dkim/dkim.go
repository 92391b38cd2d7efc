// Package dkim generates DomainKeys Identified Mail (DKIM) signatures for
// outbound messages per RFC 6376.
//
// A message is signed by computing a DKIM-Signature header over a selected
// set of message headers and a digest of the message body. Quill signs
// with RSA-SHA256 using "relaxed/relaxed" canonicalization, which is what
// receiving verifiers expect from an outbound mail platform.
//
// # Basic Usage
//
//	identity, err := dkim.SelectIdentity(domain, fallback)
//	if err != nil {
//	    // no usable signing key
//	}
//	signer := dkim.Signer{Identity: identity}
//	header, err := signer.Sign(rawMessage)
//
// The returned header is a single unfolded line of the form
// "DKIM-Signature: v=1; a=rsa-sha256; ...; b=<signature>", ready to be
// prepended to the message before transmission.
//
// Signature verification, key generation and DNS record handling are out
// of scope; this package only produces signatures.
package dkim

import (
	"crypto/rand"
	"errors"
	"time"
)

// Fixed signing policy. RFC 6376 requires verifiers to support rsa-sha256,
// and relaxed canonicalization keeps signatures stable across the header
// rewriting that intermediate MTAs commonly perform.
const (
	// Algorithm is the a= tag value of every signature quill produces.
	Algorithm = "rsa-sha256"

	// Canonicalization is the c= tag value (header/body) of every
	// signature quill produces.
	Canonicalization = "relaxed/relaxed"
)

// Common errors.
var (
	// ErrConfiguration indicates no usable signing identity: missing key
	// material, empty domain or empty selector. Returned before any
	// canonicalization work is done.
	ErrConfiguration = errors.New("dkim: no usable signing identity")

	// ErrMalformedMessage indicates the message cannot be normalized:
	// a header line with no colon, broken continuation structure, or
	// byte sequences that are not valid UTF-8.
	ErrMalformedMessage = errors.New("dkim: malformed message")

	// ErrSigning indicates the cryptographic signing operation failed,
	// for example because the key is malformed or too small for RSA-SHA256.
	ErrSigning = errors.New("dkim: signing failed")
)

// SignableHeaders is the fixed list of header fields eligible for signing.
// Headers not on this list are never signed. A listed header that occurs
// several times in a message is signed once per occurrence, in message
// order.
var SignableHeaders = []string{
	"from",
	"sender",
	"reply-to",
	"subject",
	"date",
	"message-id",
	"to",
	"cc",
	"mime-version",
	"content-type",
	"content-transfer-encoding",
	"resent-to",
	"resent-cc",
	"resent-from",
	"resent-sender",
	"resent-message-id",
	"in-reply-to",
	"references",
	"list-id",
	"list-help",
	"list-owner",
	"list-unsubscribe",
	"list-subscribe",
	"list-post",
}

// signableSet indexes SignableHeaders for selection.
var signableSet = func() map[string]bool {
	set := make(map[string]bool, len(SignableHeaders))
	for _, name := range SignableHeaders {
		set[name] = true
	}
	return set
}()

// timeNow is used for testing.
var timeNow = time.Now

// cryptoRand is the random source for signing.
var cryptoRand = rand.Reader
