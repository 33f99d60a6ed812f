package phone

import "testing"

func TestNormalizeAcceptedForms(t *testing.T) {
	n := NewNormalizer("91")

	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"919876543210", "+919876543210"},
		{"+919876543210", "+919876543210"},
		{" 98765 43210 ", "+919876543210"},
	}

	for _, tc := range cases {
		if got := n.Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateRejectsWrongLength(t *testing.T) {
	n := NewNormalizer("91")

	for _, bad := range []string{
		"+91987654321",    // nine subscriber digits
		"+9198765432101",  // eleven subscriber digits
		"+9198765abc10",   // non-digit
		"+129876543210",   // wrong region
		"9876543210",      // not canonical yet
		"",
	} {
		if n.Validate(bad) {
			t.Fatalf("Validate(%q) = true, want false", bad)
		}
	}

	if !n.Validate("+919876543210") {
		t.Fatalf("Validate rejected canonical number")
	}
}

func TestCanonicalize(t *testing.T) {
	n := NewNormalizer("91")

	got, err := n.Canonicalize("9876543210")
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	if got != "+919876543210" {
		t.Fatalf("got %q", got)
	}

	if _, err := n.Canonicalize("12345"); err == nil {
		t.Fatalf("expected error for malformed number")
	}
}
