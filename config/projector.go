package config

import (
	"os"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config/models"
)

// Environment variable names projected for the claude subprocess.
const (
	EnvBaseURL     = "ANTHROPIC_BASE_URL"
	EnvAPIKey      = "ANTHROPIC_API_KEY"
	EnvAuthToken   = "ANTHROPIC_AUTH_TOKEN"
	EnvHaikuModel  = "ANTHROPIC_DEFAULT_HAIKU_MODEL"
	EnvSonnetModel = "ANTHROPIC_DEFAULT_SONNET_MODEL"
	EnvOpusModel   = "ANTHROPIC_DEFAULT_OPUS_MODEL"
)

// tierEnvNames maps a tier to its projected variable.
var tierEnvNames = map[string]string{
	models.TierHaiku:  EnvHaikuModel,
	models.TierSonnet: EnvSonnetModel,
	models.TierOpus:   EnvOpusModel,
}

// EnvLookup resolves a host environment variable, returning "" when unset.
// Injected so tests can substitute a fixed mapping.
type EnvLookup func(name string) string

// ProjectEnvironment derives the variable assignments for a resolved
// configuration. In the result an empty value means "remove this variable
// from the child environment" and an absent key means "leave it alone":
// the auth token is always emitted empty (explicit unset), while tiers
// without a selection are omitted entirely so an unrelated host setting is
// not clobbered.
//
// For envvar-typed keys an unset host variable silently projects an empty
// key. That can launch without a credential; it is the documented behavior,
// not an error.
func ProjectEnvironment(resolved models.ResolvedConfig, lookup EnvLookup) map[string]string {
	if lookup == nil {
		lookup = os.Getenv
	}

	apiKey := ""
	switch resolved.APIKeyType {
	case models.KeyTypeDirect:
		apiKey = resolved.APIKey
	case models.KeyTypeEnvVar:
		apiKey = lookup(resolved.APIKey)
	}

	env := map[string]string{
		EnvAuthToken: "",
		EnvAPIKey:    apiKey,
	}
	if resolved.BaseURL != "" {
		env[EnvBaseURL] = resolved.BaseURL
	}
	for _, tier := range models.Tiers() {
		if model, ok := resolved.Models.Get(tier); ok {
			env[tierEnvNames[tier]] = model
		}
	}
	return env
}

// ProjectedEnvNames lists every variable the projector may emit, in
// display order.
func ProjectedEnvNames() []string {
	return []string{
		EnvBaseURL,
		EnvAuthToken,
		EnvAPIKey,
		EnvHaikuModel,
		EnvSonnetModel,
		EnvOpusModel,
	}
}
