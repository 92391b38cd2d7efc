package dkim

import (
	"strings"

	"github.com/quillmta/quill"
)

// SignMail signs a mail object and prepends the DKIM-Signature header to
// its content. The header must end up above the headers it covers, so it
// always goes first.
func SignMail(mail *quill.Mail, identity SigningIdentity) error {
	signer := Signer{Identity: identity}
	header, err := signer.Sign(mail.Content.ToRaw())
	if err != nil {
		return err
	}

	value := strings.TrimPrefix(header, "DKIM-Signature: ")
	mail.Content.Headers = append(quill.Headers{{
		Name:  "DKIM-Signature",
		Value: value,
	}}, mail.Content.Headers...)

	return nil
}
