// Package models defines the persisted configuration document and its
// building blocks: providers, saved configurations and per-tier model
// selections.
package models

// Model tiers. Every saved configuration assigns at most one model
// identifier to each tier.
const (
	TierHaiku  = "haiku"
	TierSonnet = "sonnet"
	TierOpus   = "opus"
)

// Tiers returns the fixed tier set in display order.
func Tiers() []string {
	return []string{TierHaiku, TierSonnet, TierOpus}
}

// API key handling policies for a provider.
const (
	KeyTypeDirect = "direct" // api_key holds the credential itself
	KeyTypeEnvVar = "envvar" // api_key names a host environment variable
	KeyTypeNone   = "none"   // no credential
)

// Provider is a named API endpoint with its last-discovered model list and
// API key policy.
type Provider struct {
	BaseURL    string   `json:"base_url"`
	Models     []string `json:"models"`
	APIKey     string   `json:"api_key"`
	APIKeyType string   `json:"api_key_type"`
}

// ModelSelection assigns a model identifier per tier. A nil entry means the
// tier has no selection; it serializes as JSON null and must be omitted from
// any projected environment.
type ModelSelection struct {
	Haiku  *string `json:"haiku"`
	Sonnet *string `json:"sonnet"`
	Opus   *string `json:"opus"`
}

// Get returns the selection for tier, and whether one is set. An unknown
// tier reads as unset.
func (s ModelSelection) Get(tier string) (string, bool) {
	var p *string
	switch tier {
	case TierHaiku:
		p = s.Haiku
	case TierSonnet:
		p = s.Sonnet
	case TierOpus:
		p = s.Opus
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set stores model (nil clears) for tier. It reports false for an
// unrecognized tier and leaves the selection untouched.
func (s *ModelSelection) Set(tier string, model *string) bool {
	switch tier {
	case TierHaiku:
		s.Haiku = model
	case TierSonnet:
		s.Sonnet = model
	case TierOpus:
		s.Opus = model
	default:
		return false
	}
	return true
}

// Clone returns a deep copy so saved configurations do not alias the
// scratch selection.
func (s ModelSelection) Clone() ModelSelection {
	return ModelSelection{
		Haiku:  clonePtr(s.Haiku),
		Sonnet: clonePtr(s.Sonnet),
		Opus:   clonePtr(s.Opus),
	}
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// NamedConfig is a saved configuration: a provider reference (which may
// dangle after the provider is removed) plus a frozen model selection.
type NamedConfig struct {
	Provider string         `json:"provider"`
	Models   ModelSelection `json:"models"`
}

// Document is the whole persisted state. Providers and configs keep their
// insertion order, which is observable through every listing operation and
// matches the key order of the JSON objects on disk.
type Document struct {
	Providers     *OrderedMap[Provider]    `json:"providers"`
	Models        ModelSelection           `json:"models"`
	Configs       *OrderedMap[NamedConfig] `json:"configs"`
	DefaultConfig *string                  `json:"default_config"`
}

// NewDocument returns the empty default document.
func NewDocument() *Document {
	return &Document{
		Providers: NewOrderedMap[Provider](),
		Configs:   NewOrderedMap[NamedConfig](),
	}
}

// Normalize repairs nil collections after a partial unmarshal so callers
// never see a nil map.
func (d *Document) Normalize() {
	if d.Providers == nil {
		d.Providers = NewOrderedMap[Provider]()
	}
	if d.Configs == nil {
		d.Configs = NewOrderedMap[NamedConfig]()
	}
}

// ResolvedConfig is a saved configuration joined with its provider: base
// URL and key policy come from the provider, the model selection from the
// saved configuration.
type ResolvedConfig struct {
	BaseURL    string
	Models     ModelSelection
	APIKey     string
	APIKeyType string
}
