package dkim

import (
	"strings"
	"testing"

	"github.com/quillmta/quill"
)

func TestSignMail(t *testing.T) {
	mail := &quill.Mail{
		Envelope: quill.Envelope{
			From: "a@b.com",
			To:   []string{"c@d.com"},
		},
		Content: quill.Content{
			Headers: quill.Headers{
				{Name: "From", Value: "a@b.com"},
				{Name: "To", Value: "c@d.com"},
				{Name: "Subject", Value: "Hello"},
			},
			Body: []byte("Hi there\r\n"),
		},
	}

	if err := SignMail(mail, testIdentity(t)); err != nil {
		t.Fatalf("SignMail() error = %v", err)
	}

	if len(mail.Content.Headers) != 4 {
		t.Fatalf("got %d headers, want 4", len(mail.Content.Headers))
	}
	first := mail.Content.Headers[0]
	if first.Name != "DKIM-Signature" {
		t.Errorf("first header = %q, want DKIM-Signature", first.Name)
	}
	if !strings.HasPrefix(first.Value, "v=1; a=rsa-sha256; ") {
		t.Errorf("signature value = %q, want v=1; a=rsa-sha256; prefix", first.Value)
	}
	if !strings.Contains(first.Value, "; h=from:to:subject; ") {
		t.Errorf("signature value missing h= tag: %q", first.Value)
	}
}

func TestSignMailPropagatesErrors(t *testing.T) {
	mail := &quill.Mail{
		Content: quill.Content{
			Headers: quill.Headers{{Name: "From", Value: "a@b.com"}},
		},
	}

	err := SignMail(mail, SigningIdentity{})
	if err == nil {
		t.Fatal("SignMail() with empty identity succeeded")
	}
	if len(mail.Content.Headers) != 1 {
		t.Errorf("failed SignMail() modified the headers: %v", mail.Content.Headers)
	}
}
