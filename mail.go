package quill

import (
	"bytes"
	"time"

	"github.com/quillmta/quill/utils"
)

// Header is a single message header field per RFC 5322.
type Header struct {
	// Name is the header field name (e.g., "From", "Subject").
	Name string `json:"name"`
	// Value is the header field value.
	Value string `json:"value"`
}

// Headers is an ordered collection of message headers. Order matters:
// DKIM signs headers in the order they appear, so Headers never reorders
// or de-duplicates entries.
type Headers []Header

// Get returns the first header value with the given name (case-insensitive).
func (h Headers) Get(name string) string {
	for _, hdr := range h {
		if utils.EqualFoldASCII(hdr.Name, name) {
			return hdr.Value
		}
	}
	return ""
}

// GetAll returns all header values with the given name (case-insensitive).
func (h Headers) GetAll(name string) []string {
	var values []string
	for _, hdr := range h {
		if utils.EqualFoldASCII(hdr.Name, name) {
			values = append(values, hdr.Value)
		}
	}
	return values
}

// Add appends a header.
func (h *Headers) Add(name, value string) {
	*h = append(*h, Header{Name: name, Value: value})
}

// Content is the message content: the header section and the body, as
// transmitted after the SMTP DATA command.
type Content struct {
	// Headers contains all message header fields in order.
	Headers Headers `json:"headers"`

	// Body is the raw message body.
	Body []byte `json:"body,omitempty"`
}

// ToRaw renders the content as a raw RFC 5322 message with CRLF line
// endings: each header as "Name: value", a blank line, then the body.
// This is the byte form the DKIM signer consumes.
func (c *Content) ToRaw() []byte {
	var buf bytes.Buffer
	for _, h := range c.Headers {
		buf.WriteString(h.Name)
		buf.WriteString(": ")
		buf.WriteString(h.Value)
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.Write(c.Body)
	return buf.Bytes()
}

// Envelope is the SMTP envelope of an outbound message. It controls
// delivery and is distinct from the message headers.
type Envelope struct {
	// From is the reverse-path (return path) address.
	From string `json:"from"`

	// To is the list of recipient addresses.
	To []string `json:"to"`
}

// Mail is one outbound message: envelope plus content, with a queue
// identifier assigned when the message is built.
type Mail struct {
	// ID is the unique identifier assigned to this message.
	ID string `json:"id"`

	// Envelope is the SMTP envelope.
	Envelope Envelope `json:"envelope"`

	// Content is the message header section and body.
	Content Content `json:"content"`

	// QueuedAt is when the message entered the outbound queue.
	QueuedAt time.Time `json:"queued_at"`
}

// NewMail creates an empty Mail.
func NewMail() *Mail {
	return &Mail{}
}
