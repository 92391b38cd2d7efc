package dkim

import (
	"crypto/rsa"
	"fmt"

	"golang.org/x/net/idna"
)

// StatusOK is the DKIM readiness status of a domain whose published DNS
// key material has been verified and is consistent with its private key.
// Any other status falls back to the server-wide signing identity.
const StatusOK = "OK"

// DefaultSelector is the selector used when signing with the fallback key.
const DefaultSelector = "postal"

// DomainRecord describes a sending domain as supplied by the domain store.
// It is read-only as far as this package is concerned.
type DomainRecord struct {
	// Name is the domain name used as the d= tag when the domain is ready.
	Name string

	// DKIMStatus is the DNS verification status; see StatusOK.
	DKIMStatus string

	// DKIMKey is the domain's RSA signing key.
	DKIMKey *rsa.PrivateKey

	// DKIMIdentifier is the selector published for the domain (s= tag).
	DKIMIdentifier string
}

// FallbackConfig carries the server-wide signing identity used when a
// message's domain has no verified DKIM key. It is loaded once at process
// start and treated as read-only thereafter.
type FallbackConfig struct {
	// ReturnPathHost becomes the d= tag of fallback signatures.
	ReturnPathHost string

	// SigningKey is the process-wide default RSA signing key.
	SigningKey *rsa.PrivateKey
}

// SigningIdentity is the resolved identity a signature is produced under.
// It is immutable; a fresh value is selected per signing operation.
type SigningIdentity struct {
	// Domain is the signing domain (d= tag), always in A-label form.
	Domain string

	// Selector locates the public key under the domain (s= tag).
	Selector string

	// Key is the RSA private key. It is only read during signing, so a
	// single key may safely be shared across concurrent signing calls.
	Key *rsa.PrivateKey
}

// SelectIdentity resolves the signing identity for a message.
//
// If a domain record is supplied and its DKIM status is StatusOK, the
// domain's own name, key and selector are used. Otherwise the fallback
// identity applies, with DefaultSelector as the selector. The chosen
// domain is converted to its A-label (punycode) form, since the d= tag
// must be ASCII per RFC 6376.
//
// Returns ErrConfiguration if the resolved identity is unusable, before
// any canonicalization work is attempted.
func SelectIdentity(domain *DomainRecord, fallback FallbackConfig) (SigningIdentity, error) {
	var id SigningIdentity
	if domain != nil && domain.DKIMStatus == StatusOK {
		id = SigningIdentity{
			Domain:   domain.Name,
			Selector: domain.DKIMIdentifier,
			Key:      domain.DKIMKey,
		}
	} else {
		id = SigningIdentity{
			Domain:   fallback.ReturnPathHost,
			Selector: DefaultSelector,
			Key:      fallback.SigningKey,
		}
	}

	if err := id.validate(); err != nil {
		return SigningIdentity{}, err
	}

	name, err := idna.Lookup.ToASCII(id.Domain)
	if err != nil {
		return SigningIdentity{}, fmt.Errorf("%w: domain %q: %v", ErrConfiguration, id.Domain, err)
	}
	id.Domain = name

	return id, nil
}

// validate checks the identity carries everything signing needs.
func (id SigningIdentity) validate() error {
	if id.Key == nil {
		return fmt.Errorf("%w: missing private key", ErrConfiguration)
	}
	if id.Domain == "" {
		return fmt.Errorf("%w: empty domain", ErrConfiguration)
	}
	if id.Selector == "" {
		return fmt.Errorf("%w: empty selector", ErrConfiguration)
	}
	return nil
}
