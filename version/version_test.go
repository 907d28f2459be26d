package version

import "testing"

func TestSanitizeBuild(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"", ""},
		{"rc1", "rc1"},
		{"dev-20260830", "dev-20260830"},
		{"bad build", ""},
		{"under_score", ""},
	}

	for _, test := range tests {
		if result := sanitizeBuild(test.in); result != test.expected {
			t.Fatalf("%q: expected %q, instead found: %q", test.in, test.expected, result)
		}
	}
}
