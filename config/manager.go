// Package config owns the persisted cci document: named providers, the
// scratch model selection, saved configurations and the default-config
// pointer. Every mutating operation enforces the document invariants and
// rewrites the file before returning; validation and referential failures
// surface as boolean or empty results, never as errors.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config/models"
	"github.com/eleqtrizit/Claude-Code-Interceptor/config/storage"
	"github.com/eleqtrizit/Claude-Code-Interceptor/config/validation"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/discovery"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/logging"
)

// Discoverer is the slice of the model discovery client the store depends
// on. Both methods swallow transport failures.
type Discoverer interface {
	// ListModelNames returns the model ids served at baseURL, empty on any
	// failure.
	ListModelNames(baseURL, apiKey string) []string
	// ProbeModelNames keeps the failure modes apart: ok=false means the
	// endpoint is unreachable, ok=true with an empty list means it answered
	// but serves no models.
	ProbeModelNames(baseURL, apiKey string) ([]string, bool)
}

// Manager is the configuration store. It loads the document once at
// construction and persists after every successful mutation; within one
// process the in-memory document is authoritative.
type Manager struct {
	store    *storage.FileStore
	doc      *models.Document
	extras   []storage.Extra
	discover Discoverer
	log      zerolog.Logger
}

// NewManager opens the store at the per-user config path
// ($XDG_CONFIG_HOME/cci/config.json, defaulting to ~/.config) with the
// default discovery client.
func NewManager() (*Manager, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	path := filepath.Join(configHome, "cci", "config.json")
	return NewManagerAt(path, discovery.NewClient()), nil
}

// NewManagerAt opens the store at an explicit path with an injected
// discovery client. Tests use this to avoid the real network and home
// directory.
func NewManagerAt(path string, disc Discoverer) *Manager {
	store := storage.NewFileStore(path)
	doc, extras := store.Load()
	return &Manager{
		store:    store,
		doc:      doc,
		extras:   extras,
		discover: disc,
		log:      logging.New("config"),
	}
}

// Path returns the backing file path.
func (m *Manager) Path() string {
	return m.store.Path()
}

// persist rewrites the file. Save failures are logged and swallowed; the
// in-memory document stays authoritative for the rest of the process.
func (m *Manager) persist() {
	if err := m.store.Save(m.doc, m.extras); err != nil {
		m.log.Debug().Err(err).Str("path", m.store.Path()).Msg("persist failed")
	}
}

// AddProvider discovers the models served at baseURL and, when at least one
// is found, inserts or overwrites the provider entry. A provider with zero
// discovered models is refused and the store is left unchanged.
func (m *Manager) AddProvider(name, baseURL, apiKey, apiKeyType string) bool {
	if apiKeyType == "" {
		apiKeyType = models.KeyTypeNone
	}

	modelList := m.discover.ListModelNames(baseURL, apiKey)
	if len(modelList) == 0 {
		return false
	}

	m.doc.Providers.Set(name, models.Provider{
		BaseURL:    baseURL,
		Models:     modelList,
		APIKey:     apiKey,
		APIKeyType: apiKeyType,
	})
	m.persist()
	return true
}

// RemoveProvider deletes the provider and cascades to every saved
// configuration referencing it, resetting the default pointer if it named
// one of the deleted configurations. No-op when the provider is absent.
func (m *Manager) RemoveProvider(name string) {
	if !m.doc.Providers.Has(name) {
		return
	}

	for _, configName := range m.GetConfigsForProvider(name) {
		m.doc.Configs.Delete(configName)
		if m.doc.DefaultConfig != nil && *m.doc.DefaultConfig == configName {
			m.doc.DefaultConfig = nil
		}
	}

	m.doc.Providers.Delete(name)
	m.persist()
}

// UpdateProvider re-runs discovery for an existing provider and replaces
// its cached model list with whatever the endpoint serves now.
func (m *Manager) UpdateProvider(name string) bool {
	provider, ok := m.doc.Providers.Get(name)
	if !ok {
		return false
	}

	provider.Models = m.discover.ListModelNames(provider.BaseURL, provider.APIKey)
	m.doc.Providers.Set(name, provider)
	m.persist()
	return true
}

// SetModel writes the scratch selection for tier; nil clears it. A write
// to an unrecognized tier is rejected.
func (m *Manager) SetModel(tier string, model *string) bool {
	if !validation.ValidTier(tier) {
		return false
	}
	m.doc.Models.Set(tier, model)
	m.persist()
	return true
}

// Models returns a copy of the scratch model selection.
func (m *Manager) Models() models.ModelSelection {
	return m.doc.Models.Clone()
}

// SaveConfigAs stores the scratch selection under the normalized name,
// pinned to providerName, overwriting any existing entry of the same
// normalized name. A name that normalizes to "" is rejected.
func (m *Manager) SaveConfigAs(name, providerName string) bool {
	normalized := validation.NormalizeName(name)
	if normalized == "" {
		return false
	}

	m.doc.Configs.Set(normalized, models.NamedConfig{
		Provider: providerName,
		Models:   m.doc.Models.Clone(),
	})
	m.persist()
	return true
}

// LoadConfigByName resolves a saved configuration: base URL and key policy
// from its provider, model selection from the configuration itself. A
// missing configuration or a dangling provider reference both read as
// not-found.
func (m *Manager) LoadConfigByName(name string) (models.ResolvedConfig, bool) {
	cfg, ok := m.doc.Configs.Get(name)
	if !ok {
		return models.ResolvedConfig{}, false
	}
	provider, ok := m.doc.Providers.Get(cfg.Provider)
	if !ok {
		return models.ResolvedConfig{}, false
	}

	return models.ResolvedConfig{
		BaseURL:    provider.BaseURL,
		Models:     cfg.Models.Clone(),
		APIKey:     provider.APIKey,
		APIKeyType: provider.APIKeyType,
	}, true
}

// GetConfigsForProvider returns the saved configuration names pinned to
// providerName, in document order.
func (m *Manager) GetConfigsForProvider(providerName string) []string {
	var names []string
	for _, name := range m.doc.Configs.Keys() {
		if cfg, ok := m.doc.Configs.Get(name); ok && cfg.Provider == providerName {
			names = append(names, name)
		}
	}
	return names
}

// RemoveConfig deletes a saved configuration, resetting the default
// pointer if it named it.
func (m *Manager) RemoveConfig(name string) bool {
	if !m.doc.Configs.Has(name) {
		return false
	}

	m.doc.Configs.Delete(name)
	if m.doc.DefaultConfig != nil && *m.doc.DefaultConfig == name {
		m.doc.DefaultConfig = nil
	}
	m.persist()
	return true
}

// CheckAndRefreshDefault repairs a default pointer that names a missing
// configuration (possible when the file was edited externally) and reports
// whether a default is set afterwards.
func (m *Manager) CheckAndRefreshDefault() bool {
	if m.doc.DefaultConfig != nil && !m.doc.Configs.Has(*m.doc.DefaultConfig) {
		m.doc.DefaultConfig = nil
		m.persist()
	}
	return m.doc.DefaultConfig != nil
}

// SetDefaultConfig sets the default pointer unconditionally. Callers
// validate existence beforehand; CheckAndRefreshDefault is the repair path.
func (m *Manager) SetDefaultConfig(name string) {
	m.doc.DefaultConfig = &name
	m.persist()
}

// SetDefaultIfOnlyOneConfig promotes the sole saved configuration to
// default, when exactly one exists.
func (m *Manager) SetDefaultIfOnlyOneConfig() {
	if m.doc.Configs.Len() == 1 {
		only := m.doc.Configs.Keys()[0]
		m.doc.DefaultConfig = &only
		m.persist()
	}
}

// DefaultConfigName returns the default configuration name, "" when unset.
func (m *Manager) DefaultConfigName() string {
	if m.doc.DefaultConfig == nil {
		return ""
	}
	return *m.doc.DefaultConfig
}

// GetAvailableModels returns the provider's last-known model list without
// touching the network; empty when the provider is absent.
func (m *Manager) GetAvailableModels(providerName string) []string {
	provider, ok := m.doc.Providers.Get(providerName)
	if !ok {
		return []string{}
	}
	out := make([]string, len(provider.Models))
	copy(out, provider.Models)
	return out
}

// GetLiveModelsForProvider performs a live discovery call for staleness
// checks. nil means the provider is absent or currently unreachable, which
// is distinct from an empty list (reachable but serving zero models).
func (m *Manager) GetLiveModelsForProvider(providerName string) []string {
	provider, ok := m.doc.Providers.Get(providerName)
	if !ok {
		return nil
	}
	names, ok := m.discover.ProbeModelNames(provider.BaseURL, provider.APIKey)
	if !ok {
		return nil
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// ProviderNames returns provider names in document order.
func (m *Manager) ProviderNames() []string {
	return m.doc.Providers.Keys()
}

// Provider returns a provider entry by name.
func (m *Manager) Provider(name string) (models.Provider, bool) {
	return m.doc.Providers.Get(name)
}

// ConfigNames returns saved configuration names in document order.
func (m *Manager) ConfigNames() []string {
	return m.doc.Configs.Keys()
}

// Config returns a saved configuration by name.
func (m *Manager) Config(name string) (models.NamedConfig, bool) {
	return m.doc.Configs.Get(name)
}
