package utils

import "testing"

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"ab", "****ab"},
		{"abcd", "****abcd"},
		{"sk-ant-1234567890", "****7890"},
	}
	for _, tt := range tests {
		if got := MaskAPIKey(tt.key); got != tt.want {
			t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://api.anthropic.com",
		"http://localhost:8080",
		"https://api.acme.test/v1",
	}
	for _, u := range valid {
		if !ValidateURL(u) {
			t.Errorf("ValidateURL(%q) = false, want true", u)
		}
	}

	invalid := []string{
		"",
		"not a url",
		"ftp://files.test",
		"https://",
		"api.acme.test",
	}
	for _, u := range invalid {
		if ValidateURL(u) {
			t.Errorf("ValidateURL(%q) = true, want false", u)
		}
	}
}
