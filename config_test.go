package quill

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadSigningConfig(t *testing.T) {
	path := writeFile(t, "signing.yml", []byte(
		"return_path_host: rp.mail.example.com\n"+
			"dkim_key_file: /etc/quill/dkim.pem\n"))

	cfg, err := LoadSigningConfig(path)
	if err != nil {
		t.Fatalf("LoadSigningConfig() error = %v", err)
	}
	if cfg.ReturnPathHost != "rp.mail.example.com" {
		t.Errorf("return path host = %q", cfg.ReturnPathHost)
	}
	if cfg.DKIMKeyFile != "/etc/quill/dkim.pem" {
		t.Errorf("key file = %q", cfg.DKIMKeyFile)
	}
}

func TestLoadSigningConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing return path host", "dkim_key_file: /etc/quill/dkim.pem\n"},
		{"missing key file", "return_path_host: rp.mail.example.com\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "signing.yml", []byte(tt.yaml))
			_, err := LoadSigningConfig(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("LoadSigningConfig() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadPrivateKey(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshaling PKCS#8: %v", err)
	}

	tests := []struct {
		name string
		pem  *pem.Block
	}{
		{"PKCS1", &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}},
		{"PKCS8", &pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "dkim.pem", pem.EncodeToMemory(tt.pem))
			loaded, err := LoadPrivateKey(path)
			if err != nil {
				t.Fatalf("LoadPrivateKey() error = %v", err)
			}
			if loaded.N.Cmp(key.N) != 0 {
				t.Error("loaded key does not match the generated key")
			}
		})
	}
}

func TestLoadPrivateKeyErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not PEM", []byte("plain text")},
		{"wrong PEM type", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{1, 2, 3}})},
		{"corrupt key bytes", pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{1, 2, 3}})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "dkim.pem", tt.data)
			_, err := LoadPrivateKey(path)
			if !errors.Is(err, ErrInvalidKey) {
				t.Errorf("LoadPrivateKey() error = %v, want ErrInvalidKey", err)
			}
		})
	}
}
