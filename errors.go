package quill

import "errors"

var (
	ErrNoSender       = errors.New("quill: mail has no sender")
	ErrNoRecipients   = errors.New("quill: mail has no recipients")
	ErrInvalidAddress = errors.New("quill: invalid address")
	ErrInvalidConfig  = errors.New("quill: invalid signing config")
	ErrInvalidKey     = errors.New("quill: invalid private key file")
)
