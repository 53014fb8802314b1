package config

import (
	"testing"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config/models"
)

func fixedLookup(vars map[string]string) EnvLookup {
	return func(name string) string { return vars[name] }
}

func TestProjectEnvironmentDirectKey(t *testing.T) {
	env := ProjectEnvironment(models.ResolvedConfig{
		BaseURL:    "https://api.acme.test",
		APIKey:     "sk-direct",
		APIKeyType: models.KeyTypeDirect,
		Models:     models.ModelSelection{Sonnet: strPtr("claude-sonnet-4")},
	}, fixedLookup(nil))

	if env[EnvBaseURL] != "https://api.acme.test" {
		t.Errorf("base url = %q", env[EnvBaseURL])
	}
	if env[EnvAPIKey] != "sk-direct" {
		t.Errorf("api key = %q", env[EnvAPIKey])
	}
	if env[EnvSonnetModel] != "claude-sonnet-4" {
		t.Errorf("sonnet = %q", env[EnvSonnetModel])
	}
}

func TestProjectEnvironmentEnvVarKey(t *testing.T) {
	resolved := models.ResolvedConfig{
		APIKey:     "ACME_KEY",
		APIKeyType: models.KeyTypeEnvVar,
	}

	env := ProjectEnvironment(resolved, fixedLookup(map[string]string{"ACME_KEY": "sk-from-host"}))
	if env[EnvAPIKey] != "sk-from-host" {
		t.Errorf("api key = %q, want host value", env[EnvAPIKey])
	}

	// Unset host variable silently projects an empty key.
	env = ProjectEnvironment(resolved, fixedLookup(nil))
	if v, ok := env[EnvAPIKey]; !ok || v != "" {
		t.Errorf("api key = %q, %v, want present and empty", v, ok)
	}
}

func TestProjectEnvironmentNoneKey(t *testing.T) {
	env := ProjectEnvironment(models.ResolvedConfig{
		APIKey:     "ignored",
		APIKeyType: models.KeyTypeNone,
	}, fixedLookup(nil))

	if v, ok := env[EnvAPIKey]; !ok || v != "" {
		t.Errorf("api key = %q, %v, want present and empty", v, ok)
	}
}

func TestProjectEnvironmentAuthTokenAlwaysCleared(t *testing.T) {
	env := ProjectEnvironment(models.ResolvedConfig{
		APIKey:     "sk-x",
		APIKeyType: models.KeyTypeDirect,
	}, fixedLookup(nil))

	if v, ok := env[EnvAuthToken]; !ok || v != "" {
		t.Errorf("auth token = %q, %v, want present and empty", v, ok)
	}
}

func TestProjectEnvironmentOmitsUnsetFields(t *testing.T) {
	env := ProjectEnvironment(models.ResolvedConfig{
		Models: models.ModelSelection{Opus: strPtr("claude-opus-4")},
	}, fixedLookup(nil))

	// Empty base URL and unselected tiers are absent, not empty: absent
	// means the host value is left alone.
	if _, ok := env[EnvBaseURL]; ok {
		t.Error("empty base url projected")
	}
	if _, ok := env[EnvHaikuModel]; ok {
		t.Error("unset haiku tier projected")
	}
	if _, ok := env[EnvSonnetModel]; ok {
		t.Error("unset sonnet tier projected")
	}
	if env[EnvOpusModel] != "claude-opus-4" {
		t.Errorf("opus = %q", env[EnvOpusModel])
	}
}

func TestProjectedEnvNamesCoversEmittedKeys(t *testing.T) {
	known := make(map[string]bool)
	for _, name := range ProjectedEnvNames() {
		known[name] = true
	}

	env := ProjectEnvironment(models.ResolvedConfig{
		BaseURL:    "https://api.acme.test",
		APIKey:     "sk-x",
		APIKeyType: models.KeyTypeDirect,
		Models: models.ModelSelection{
			Haiku:  strPtr("h"),
			Sonnet: strPtr("s"),
			Opus:   strPtr("o"),
		},
	}, fixedLookup(nil))

	for name := range env {
		if !known[name] {
			t.Errorf("projected %q is not in ProjectedEnvNames", name)
		}
	}
}
