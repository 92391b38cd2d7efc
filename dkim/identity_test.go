package dkim

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"testing"
)

var (
	testKeyOnce sync.Once
	testRSAKey  *rsa.PrivateKey
)

// testKey returns a shared 2048-bit RSA key for tests.
func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			panic(err)
		}
		testRSAKey = key
	})
	return testRSAKey
}

func TestSelectIdentity(t *testing.T) {
	key := testKey(t)
	fallback := FallbackConfig{
		ReturnPathHost: "rp.mail.example.com",
		SigningKey:     key,
	}

	tests := []struct {
		name         string
		domain       *DomainRecord
		fallback     FallbackConfig
		wantDomain   string
		wantSelector string
		wantErr      error
	}{
		{
			name: "verified domain uses its own identity",
			domain: &DomainRecord{
				Name:           "example.com",
				DKIMStatus:     StatusOK,
				DKIMKey:        key,
				DKIMIdentifier: "mail2024",
			},
			fallback:     fallback,
			wantDomain:   "example.com",
			wantSelector: "mail2024",
		},
		{
			name:         "nil domain falls back",
			domain:       nil,
			fallback:     fallback,
			wantDomain:   "rp.mail.example.com",
			wantSelector: DefaultSelector,
		},
		{
			name: "unverified domain falls back",
			domain: &DomainRecord{
				Name:           "example.com",
				DKIMStatus:     "Pending",
				DKIMKey:        key,
				DKIMIdentifier: "mail2024",
			},
			fallback:     fallback,
			wantDomain:   "rp.mail.example.com",
			wantSelector: DefaultSelector,
		},
		{
			name: "unicode domain converted to A-labels",
			domain: &DomainRecord{
				Name:           "münchen.example",
				DKIMStatus:     StatusOK,
				DKIMKey:        key,
				DKIMIdentifier: "s1",
			},
			fallback:     fallback,
			wantDomain:   "xn--mnchen-3ya.example",
			wantSelector: "s1",
		},
		{
			name: "verified domain without key",
			domain: &DomainRecord{
				Name:           "example.com",
				DKIMStatus:     StatusOK,
				DKIMIdentifier: "mail2024",
			},
			fallback: fallback,
			wantErr:  ErrConfiguration,
		},
		{
			name: "verified domain with empty selector",
			domain: &DomainRecord{
				Name:       "example.com",
				DKIMStatus: StatusOK,
				DKIMKey:    key,
			},
			fallback: fallback,
			wantErr:  ErrConfiguration,
		},
		{
			name:     "fallback without key",
			domain:   nil,
			fallback: FallbackConfig{ReturnPathHost: "rp.mail.example.com"},
			wantErr:  ErrConfiguration,
		},
		{
			name:     "fallback without return path host",
			domain:   nil,
			fallback: FallbackConfig{SigningKey: key},
			wantErr:  ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := SelectIdentity(tt.domain, tt.fallback)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SelectIdentity() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectIdentity() error = %v", err)
			}
			if id.Domain != tt.wantDomain {
				t.Errorf("domain = %q, want %q", id.Domain, tt.wantDomain)
			}
			if id.Selector != tt.wantSelector {
				t.Errorf("selector = %q, want %q", id.Selector, tt.wantSelector)
			}
			if id.Key == nil {
				t.Error("key is nil")
			}
		})
	}
}
