package quill

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SigningConfig is the server-wide outbound signing configuration,
// loaded once at process start and read-only thereafter.
type SigningConfig struct {
	// ReturnPathHost becomes the d= tag of signatures produced with the
	// fallback key, for messages whose domain has no verified DKIM key.
	ReturnPathHost string `yaml:"return_path_host"`

	// DKIMKeyFile is the path of the PEM file holding the default RSA
	// signing key.
	DKIMKeyFile string `yaml:"dkim_key_file"`
}

// LoadSigningConfig reads and validates a YAML signing configuration.
func LoadSigningConfig(path string) (*SigningConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading signing config: %w", err)
	}

	var cfg SigningConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.ReturnPathHost == "" {
		return nil, fmt.Errorf("%w: return_path_host is required", ErrInvalidConfig)
	}
	if cfg.DKIMKeyFile == "" {
		return nil, fmt.Errorf("%w: dkim_key_file is required", ErrInvalidConfig)
	}

	return &cfg, nil
}

// LoadPrivateKey reads an RSA private key from a PEM file. Both PKCS#1
// ("RSA PRIVATE KEY") and PKCS#8 ("PRIVATE KEY") encodings are accepted.
func LoadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading private key: %w", err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: %s: no PEM block found", ErrInvalidKey, path)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidKey, path, err)
		}
		return key, nil

	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidKey, path, err)
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s: not an RSA key", ErrInvalidKey, path)
		}
		return rsaKey, nil

	default:
		return nil, fmt.Errorf("%w: %s: unsupported PEM type %q", ErrInvalidKey, path, block.Type)
	}
}
