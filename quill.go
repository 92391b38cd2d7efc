// Quill is an outbound mail signing library for Go.
//
// It produces DKIM-Signature headers (RFC 6376, rsa-sha256,
// relaxed/relaxed) for messages leaving a mail platform, choosing between
// a sending domain's own verified key and a server-wide fallback key.
//
// # Signing
//
//	identity, err := dkim.SelectIdentity(domainRecord, dkim.FallbackConfig{
//	    ReturnPathHost: cfg.ReturnPathHost,
//	    SigningKey:     key,
//	})
//	signer := dkim.Signer{Identity: identity}
//	header, err := signer.Sign(rawMessage)
//
// # Mail objects
//
// Build messages with the fluent builder:
//
//	mail, err := quill.NewMailBuilder().
//	    From("sender@example.com").
//	    To("recipient@example.com").
//	    Subject("Hello").
//	    TextBody("Message content").
//	    Build()
//
//	err = dkim.SignMail(mail, identity)
//
// # Serialization
//
// Mail objects serialize to JSON and MessagePack for queue handoff:
//
//	data, err := mail.ToMessagePack()
//	mail, err := quill.FromMessagePack(data)
//
// # Configuration
//
// The server-wide signing identity is loaded once at startup:
//
//	cfg, err := quill.LoadSigningConfig("signing.yml")
//	key, err := quill.LoadPrivateKey(cfg.DKIMKeyFile)
package quill
