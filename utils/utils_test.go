package utils

import "testing"

func TestContainsNonASCII(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"plain ascii", false},
		{"user@example.com", false},
		{"sénder", true},
		{"日本語", true},
	}

	for _, tt := range tests {
		if got := ContainsNonASCII(tt.in); got != tt.want {
			t.Errorf("ContainsNonASCII(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEqualFoldASCII(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"From", "from", true},
		{"FROM", "from", true},
		{"dkim-signature", "DKIM-Signature", true},
		{"from", "form", false},
		{"from", "fromm", false},
		{"", "", true},
	}

	for _, tt := range tests {
		if got := EqualFoldASCII(tt.a, tt.b); got != tt.want {
			t.Errorf("EqualFoldASCII(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
