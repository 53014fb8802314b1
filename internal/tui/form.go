package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config/models"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/utils"
)

// Add-provider form fields. The key type is a cycling choice rather than a
// text input, so it sits after the last input index.
const (
	fieldName = iota
	fieldBaseURL
	fieldAPIKey
	fieldKeyType
	fieldCount
)

// keyTypeChoices in cycle order.
var keyTypeChoices = []string{models.KeyTypeNone, models.KeyTypeDirect, models.KeyTypeEnvVar}

// providerForm collects the inputs for a new provider.
type providerForm struct {
	inputs     []textinput.Model
	focus      int
	keyTypeIdx int
}

func newProviderForm() providerForm {
	inputs := make([]textinput.Model, 3)

	name := textinput.New()
	name.Placeholder = "provider name"
	name.CharLimit = 64
	name.Focus()
	inputs[fieldName] = name

	baseURL := textinput.New()
	baseURL.Placeholder = "https://api.example.com/v1"
	baseURL.CharLimit = 256
	inputs[fieldBaseURL] = baseURL

	apiKey := textinput.New()
	apiKey.Placeholder = "API key or env var name (optional)"
	apiKey.CharLimit = 256
	apiKey.EchoMode = textinput.EchoPassword
	inputs[fieldAPIKey] = apiKey

	return providerForm{inputs: inputs}
}

// next moves focus forward, wrapping to the first field.
func (f *providerForm) next() {
	f.setFocus((f.focus + 1) % fieldCount)
}

// prev moves focus backward, wrapping to the key-type field.
func (f *providerForm) prev() {
	f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

func (f *providerForm) setFocus(index int) {
	f.focus = index
	for i := range f.inputs {
		if i == index {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	// The env-var variant stores a variable name, not a secret.
	if f.keyType() == models.KeyTypeEnvVar {
		f.inputs[fieldAPIKey].EchoMode = textinput.EchoNormal
	} else {
		f.inputs[fieldAPIKey].EchoMode = textinput.EchoPassword
	}
}

// cycleKeyType advances the key type choice by delta (+1 or -1).
func (f *providerForm) cycleKeyType(delta int) {
	n := len(keyTypeChoices)
	f.keyTypeIdx = (f.keyTypeIdx + delta + n) % n
	if f.keyType() == models.KeyTypeEnvVar {
		f.inputs[fieldAPIKey].EchoMode = textinput.EchoNormal
	} else {
		f.inputs[fieldAPIKey].EchoMode = textinput.EchoPassword
	}
}

func (f *providerForm) keyType() string {
	return keyTypeChoices[f.keyTypeIdx]
}

func (f *providerForm) name() string    { return strings.TrimSpace(f.inputs[fieldName].Value()) }
func (f *providerForm) baseURL() string { return strings.TrimSpace(f.inputs[fieldBaseURL].Value()) }
func (f *providerForm) apiKey() string  { return strings.TrimSpace(f.inputs[fieldAPIKey].Value()) }

// validate checks the form before discovery runs.
func (f *providerForm) validate() error {
	if f.name() == "" {
		return errors.New("provider name cannot be empty")
	}
	if f.baseURL() == "" {
		return errors.New("base URL cannot be empty")
	}
	if !utils.ValidateURL(f.baseURL()) {
		return errors.New("base URL must be a valid http(s) URL")
	}
	if f.keyType() != models.KeyTypeNone && f.apiKey() == "" {
		return errors.New("API key field cannot be empty for this key type")
	}
	return nil
}
