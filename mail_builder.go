package quill

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/quillmta/quill/utils"
)

// MailBuilder provides a fluent API for constructing Mail objects.
// Errors accumulate and are reported together by Build.
type MailBuilder struct {
	mail   *Mail
	errors []error
}

// NewMailBuilder creates a new MailBuilder instance.
func NewMailBuilder() *MailBuilder {
	return &MailBuilder{mail: NewMail()}
}

// From sets the envelope sender and adds a From header.
func (b *MailBuilder) From(address string) *MailBuilder {
	addr, err := b.parseAddress(address)
	if err != nil {
		return b
	}
	b.mail.Envelope.From = addr
	b.mail.Content.Headers.Add("From", address)
	return b
}

// To adds envelope recipients and updates the To header.
func (b *MailBuilder) To(addresses ...string) *MailBuilder {
	for _, address := range addresses {
		addr, err := b.parseAddress(address)
		if err != nil {
			continue
		}
		b.mail.Envelope.To = append(b.mail.Envelope.To, addr)
	}
	b.setAddressHeader("To", addresses)
	return b
}

// Cc adds envelope recipients and a Cc header.
func (b *MailBuilder) Cc(addresses ...string) *MailBuilder {
	for _, address := range addresses {
		addr, err := b.parseAddress(address)
		if err != nil {
			continue
		}
		b.mail.Envelope.To = append(b.mail.Envelope.To, addr)
	}
	b.setAddressHeader("Cc", addresses)
	return b
}

// Subject sets the Subject header.
func (b *MailBuilder) Subject(subject string) *MailBuilder {
	b.mail.Content.Headers.Add("Subject", subject)
	return b
}

// Date sets the Date header. Build adds one automatically if missing.
func (b *MailBuilder) Date(t time.Time) *MailBuilder {
	b.mail.Content.Headers.Add("Date", t.Format(time.RFC1123Z))
	return b
}

// MessageID sets the Message-ID header. Build generates one if missing.
func (b *MailBuilder) MessageID(id string) *MailBuilder {
	b.mail.Content.Headers.Add("Message-ID", id)
	return b
}

// Header adds an arbitrary header.
func (b *MailBuilder) Header(name, value string) *MailBuilder {
	b.mail.Content.Headers.Add(name, value)
	return b
}

// TextBody sets a plain-text body with the matching MIME headers.
func (b *MailBuilder) TextBody(text string) *MailBuilder {
	b.mail.Content.Headers.Add("MIME-Version", "1.0")
	b.mail.Content.Headers.Add("Content-Type", "text/plain; charset=utf-8")
	b.mail.Content.Body = []byte(text)
	return b
}

// Build finalizes the mail: it validates the envelope, fills in Date and
// Message-ID when absent, and assigns the queue ID.
func (b *MailBuilder) Build() (*Mail, error) {
	if len(b.errors) > 0 {
		return nil, errors.Join(b.errors...)
	}
	if b.mail.Envelope.From == "" {
		return nil, ErrNoSender
	}
	if len(b.mail.Envelope.To) == 0 {
		return nil, ErrNoRecipients
	}

	if b.mail.Content.Headers.Get("Date") == "" {
		b.mail.Content.Headers.Add("Date", time.Now().Format(time.RFC1123Z))
	}
	if b.mail.Content.Headers.Get("Message-ID") == "" {
		domain := addressDomain(b.mail.Envelope.From)
		b.mail.Content.Headers.Add("Message-ID", fmt.Sprintf("<%s@%s>", ulid.Make(), domain))
	}

	b.mail.ID = ulid.Make().String()
	b.mail.QueuedAt = time.Now()
	return b.mail, nil
}

// parseAddress validates an address and returns its bare mailbox form.
// This outbound path does not negotiate SMTPUTF8, so addresses must be
// ASCII.
func (b *MailBuilder) parseAddress(address string) (string, error) {
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		err = fmt.Errorf("%w: %q: %v", ErrInvalidAddress, address, err)
		b.errors = append(b.errors, err)
		return "", err
	}
	if utils.ContainsNonASCII(parsed.Address) {
		err = fmt.Errorf("%w: %q: non-ASCII address", ErrInvalidAddress, address)
		b.errors = append(b.errors, err)
		return "", err
	}
	return parsed.Address, nil
}

// setAddressHeader appends to an existing address header rather than
// adding a duplicate field.
func (b *MailBuilder) setAddressHeader(name string, addresses []string) {
	joined := strings.Join(addresses, ", ")
	if joined == "" {
		return
	}
	for i, h := range b.mail.Content.Headers {
		if utils.EqualFoldASCII(h.Name, name) {
			b.mail.Content.Headers[i].Value = h.Value + ", " + joined
			return
		}
	}
	b.mail.Content.Headers.Add(name, joined)
}

// addressDomain extracts the domain of a bare mailbox address.
func addressDomain(address string) string {
	if at := strings.LastIndexByte(address, '@'); at >= 0 {
		return address[at+1:]
	}
	return "localhost"
}
