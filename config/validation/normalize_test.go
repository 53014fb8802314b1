package validation

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "work", "work"},
		{"uppercase folded", "MyConfig", "myconfig"},
		{"spaces become dashes", "My Config", "my-config"},
		{"underscores become dashes", "my_config", "my-config"},
		{"mixed separators and symbols", "My Config_Name 123!", "my-config-name-123"},
		{"dash runs collapse", "a--b---c", "a-b-c"},
		{"separator runs collapse", "a _ -b", "a-b"},
		{"leading and trailing trimmed", "-work-", "work"},
		{"only dashes", "---", ""},
		{"only symbols", "@#$%", ""},
		{"empty", "", ""},
		{"unicode dropped", "café", "caf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNameProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// Normalizing twice must give the same result as normalizing once.
	properties.Property("idempotent", prop.ForAll(
		func(input string) bool {
			once := NormalizeName(input)
			return NormalizeName(once) == once
		},
		gen.AnyString(),
	))

	// Output alphabet is [a-z0-9-] with no leading, trailing or doubled dash.
	properties.Property("canonical output shape", prop.ForAll(
		func(input string) bool {
			out := NormalizeName(input)
			if out == "" {
				return true
			}
			if strings.HasPrefix(out, "-") || strings.HasSuffix(out, "-") {
				return false
			}
			if strings.Contains(out, "--") {
				return false
			}
			for _, r := range out {
				valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
				if !valid {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	// Total: never panics, any input maps to some string.
	properties.Property("case insensitive", prop.ForAll(
		func(input string) bool {
			return NormalizeName(strings.ToUpper(input)) == NormalizeName(strings.ToLower(input))
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestValidTier(t *testing.T) {
	for _, tier := range []string{"haiku", "sonnet", "opus"} {
		if !ValidTier(tier) {
			t.Errorf("ValidTier(%q) = false, want true", tier)
		}
	}
	for _, tier := range []string{"", "Haiku", "turbo", "opus "} {
		if ValidTier(tier) {
			t.Errorf("ValidTier(%q) = true, want false", tier)
		}
	}
}
