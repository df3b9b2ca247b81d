package common

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A@X.COM", "a@x.com"},
		{"  ann@example.com  ", "ann@example.com"},
		{"MiXeD@Example.Com", "mixed@example.com"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Fatalf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeEmail_Idempotent(t *testing.T) {
	inputs := []string{"A@X.COM", "  Bob@Mail.Org ", "plain@ok.io"}
	for _, in := range inputs {
		once := NormalizeEmail(in)
		twice := NormalizeEmail(once)
		if once != twice {
			t.Fatalf("normalization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
