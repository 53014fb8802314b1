// Package tui is the interactive configuration editor. It is presentation
// only: every mutation goes through the config store, and discovery runs
// inside commands so the interface never blocks on the network.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config"
	"github.com/eleqtrizit/Claude-Code-Interceptor/config/models"
	"github.com/eleqtrizit/Claude-Code-Interceptor/config/validation"
)

// ViewState identifies the active screen.
type ViewState int

const (
	ViewMenu           ViewState = iota
	ViewProviderForm             // add provider
	ViewProviderList             // manage providers
	ViewProviderDelete           // cascade delete confirmation
	ViewConfigProvider           // create config: pick provider
	ViewConfigModels             // create config: pick model per tier
	ViewConfigName               // create config: name prompt
	ViewConfigList               // saved configs
	ViewConfigDelete             // delete confirmation
	ViewDefaultSelect            // pick the default config
)

var menuItems = []string{
	"Add Provider",
	"Manage Providers",
	"Create Config",
	"Saved Configs",
	"Set Default Config",
	"Quit",
}

// Model is the editor state machine.
type Model struct {
	manager *config.Manager
	keys    KeyMap
	state   ViewState
	cursor  int
	width   int
	height  int

	message  string
	errorMsg string
	busy     bool

	form providerForm

	// create-config flow
	provider     string
	tierIdx      int
	modelChoices []string
	nameInput    textinput.Model

	// pending deletion
	target  string
	cascade []string

	// set after a deletion removed the default and several configs remain
	mustPickDefault bool
}

// NewModel creates the editor over a config store.
func NewModel(manager *config.Manager) Model {
	return Model{
		manager: manager,
		keys:    DefaultKeyMap(),
		state:   ViewMenu,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// addProviderCmd runs discovery and persists the provider off the UI loop.
func addProviderCmd(manager *config.Manager, name, baseURL, apiKey, apiKeyType string) tea.Cmd {
	return func() tea.Msg {
		ok := manager.AddProvider(name, baseURL, apiKey, apiKeyType)
		count := 0
		if p, found := manager.Provider(name); found && ok {
			count = len(p.Models)
		}
		return ProviderAddedMsg{Name: name, ModelCount: count, OK: ok}
	}
}

// refreshProviderCmd re-runs discovery for an existing provider.
func refreshProviderCmd(manager *config.Manager, name string) tea.Cmd {
	return func() tea.Msg {
		ok := manager.UpdateProvider(name)
		count := 0
		if p, found := manager.Provider(name); found {
			count = len(p.Models)
		}
		return ProviderRefreshedMsg{Name: name, ModelCount: count, OK: ok}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProviderAddedMsg:
		m.busy = false
		if msg.OK {
			m.message = fmt.Sprintf("Provider '%s' added with %d models.", msg.Name, msg.ModelCount)
			m.state = ViewMenu
			m.cursor = 0
		} else {
			m.errorMsg = "No models found, not saving provider"
		}
		return m, nil

	case ProviderRefreshedMsg:
		m.busy = false
		if msg.OK {
			m.message = fmt.Sprintf("Provider '%s' now has %d models.", msg.Name, msg.ModelCount)
		} else {
			m.errorMsg = fmt.Sprintf("Failed to refresh provider '%s'.", msg.Name)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		// Discovery in flight; only allow bailing out entirely.
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	m.message = ""
	m.errorMsg = ""

	switch m.state {
	case ViewMenu:
		return m.updateMenu(msg)
	case ViewProviderForm:
		return m.updateProviderForm(msg)
	case ViewProviderList:
		return m.updateProviderList(msg)
	case ViewProviderDelete:
		return m.updateProviderDelete(msg)
	case ViewConfigProvider:
		return m.updateConfigProvider(msg)
	case ViewConfigModels:
		return m.updateConfigModels(msg)
	case ViewConfigName:
		return m.updateConfigName(msg)
	case ViewConfigList:
		return m.updateConfigList(msg)
	case ViewConfigDelete:
		return m.updateConfigDelete(msg)
	case ViewDefaultSelect:
		return m.updateDefaultSelect(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(menuItems)-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(menuItems)-1)
	case key.Matches(msg, m.keys.Select):
		return m.selectMenuItem()
	}
	return m, nil
}

func (m Model) selectMenuItem() (tea.Model, tea.Cmd) {
	switch menuItems[m.cursor] {
	case "Add Provider":
		m.form = newProviderForm()
		m.state = ViewProviderForm
	case "Manage Providers":
		if len(m.manager.ProviderNames()) == 0 {
			m.errorMsg = "No providers configured."
			return m, nil
		}
		m.cursor = 0
		m.state = ViewProviderList
	case "Create Config":
		if len(m.manager.ProviderNames()) == 0 {
			m.errorMsg = "No providers configured. Please add a provider first."
			return m, nil
		}
		m.cursor = 0
		m.state = ViewConfigProvider
	case "Saved Configs":
		if len(m.manager.ConfigNames()) == 0 {
			m.errorMsg = "No configurations saved."
			return m, nil
		}
		m.cursor = 0
		m.state = ViewConfigList
	case "Set Default Config":
		if len(m.manager.ConfigNames()) == 0 {
			m.errorMsg = "No configurations saved. Please create a configuration first."
			return m, nil
		}
		m.cursor = 0
		m.mustPickDefault = false
		m.state = ViewDefaultSelect
	case "Quit":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateProviderForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = ViewMenu
		m.cursor = 0
		return m, nil
	case "tab", "down":
		m.form.next()
		return m, nil
	case "shift+tab", "up":
		m.form.prev()
		return m, nil
	case "left", "right":
		if m.form.focus == fieldKeyType {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.form.cycleKeyType(delta)
			return m, nil
		}
	case "enter":
		if m.form.focus != fieldKeyType && m.form.focus != fieldAPIKey {
			m.form.next()
			return m, nil
		}
		if err := m.form.validate(); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.busy = true
		m.message = "Validating provider..."
		return m, addProviderCmd(m.manager, m.form.name(), m.form.baseURL(), m.form.apiKey(), m.form.keyType())
	}

	if m.form.focus < len(m.form.inputs) {
		var cmd tea.Cmd
		m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateProviderList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.manager.ProviderNames()
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.state = ViewMenu
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(names)-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(names)-1)
	case key.Matches(msg, m.keys.Refresh):
		if len(names) > 0 {
			m.busy = true
			return m, refreshProviderCmd(m.manager, names[m.cursor])
		}
	case key.Matches(msg, m.keys.Delete):
		if len(names) > 0 {
			m.target = names[m.cursor]
			m.cascade = m.manager.GetConfigsForProvider(m.target)
			m.state = ViewProviderDelete
		}
	}
	return m, nil
}

func (m Model) updateProviderDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		defaultRemoved := false
		for _, name := range m.cascade {
			if name == m.manager.DefaultConfigName() {
				defaultRemoved = true
			}
		}
		m.manager.RemoveProvider(m.target)
		m.message = fmt.Sprintf("Provider '%s' and associated configurations deleted.", m.target)
		m.cursor = 0
		m.state = ViewMenu
		if defaultRemoved {
			return m.afterDefaultRemoved()
		}
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Back):
		m.message = "Deletion cancelled."
		m.cursor = 0
		m.state = ViewProviderList
	}
	return m, nil
}

// afterDefaultRemoved restores a usable default after a deletion took it
// out: a sole surviving config is promoted automatically, several survivors
// force an explicit pick.
func (m Model) afterDefaultRemoved() (tea.Model, tea.Cmd) {
	switch len(m.manager.ConfigNames()) {
	case 0:
		// Nothing to promote; the default stays unset.
	case 1:
		m.manager.SetDefaultIfOnlyOneConfig()
		m.message += fmt.Sprintf(" Configuration '%s' automatically set as default.", m.manager.DefaultConfigName())
	default:
		m.mustPickDefault = true
		m.message = "The default configuration was deleted. Select a new default:"
		m.cursor = 0
		m.state = ViewDefaultSelect
	}
	return m, nil
}

func (m Model) updateConfigProvider(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.manager.ProviderNames()
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.state = ViewMenu
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(names)-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(names)-1)
	case key.Matches(msg, m.keys.Select):
		if len(names) == 0 {
			return m, nil
		}
		m.provider = names[m.cursor]
		m.modelChoices = m.manager.GetAvailableModels(m.provider)
		if len(m.modelChoices) == 0 {
			m.errorMsg = "No models available for the selected provider."
			m.state = ViewMenu
			m.cursor = 0
			return m, nil
		}
		m.tierIdx = 0
		m.cursor = 0
		m.state = ViewConfigModels
	}
	return m, nil
}

func (m Model) updateConfigModels(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Option 0 is "None"; the models follow.
	total := len(m.modelChoices) + 1
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = ViewConfigProvider
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, 0, total-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, 0, total-1)
	case key.Matches(msg, m.keys.Select):
		tier := models.Tiers()[m.tierIdx]
		if m.cursor == 0 {
			m.manager.SetModel(tier, nil)
		} else {
			choice := m.modelChoices[m.cursor-1]
			m.manager.SetModel(tier, &choice)
		}
		m.tierIdx++
		m.cursor = 0
		if m.tierIdx >= len(models.Tiers()) {
			m.nameInput = newNameInput()
			m.state = ViewConfigName
		}
	}
	return m, nil
}

func (m Model) updateConfigName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = ViewMenu
		m.cursor = 0
		return m, nil
	case "enter":
		if !m.manager.SaveConfigAs(m.nameInput.Value(), m.provider) {
			m.errorMsg = "Configuration name cannot be empty."
			return m, nil
		}
		m.message = fmt.Sprintf("Configuration '%s' created successfully!",
			validation.NormalizeName(m.nameInput.Value()))
		m.state = ViewMenu
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateConfigList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.manager.ConfigNames()
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Quit):
		m.state = ViewMenu
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(names)-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(names)-1)
	case key.Matches(msg, m.keys.Delete):
		if len(names) > 0 {
			m.target = names[m.cursor]
			m.state = ViewConfigDelete
		}
	}
	return m, nil
}

func (m Model) updateConfigDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		wasDefault := m.target == m.manager.DefaultConfigName()
		if m.manager.RemoveConfig(m.target) {
			m.message = fmt.Sprintf("Configuration '%s' deleted.", m.target)
		} else {
			m.errorMsg = fmt.Sprintf("Failed to delete configuration '%s'.", m.target)
		}
		m.cursor = 0
		m.state = ViewMenu
		if wasDefault {
			return m.afterDefaultRemoved()
		}
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Back):
		m.message = "Deletion cancelled."
		m.cursor = 0
		m.state = ViewConfigList
	}
	return m, nil
}

func (m Model) updateDefaultSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.manager.ConfigNames()
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.mustPickDefault {
			m.errorMsg = "No default configuration set."
		}
		m.mustPickDefault = false
		m.state = ViewMenu
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, 0, len(names)-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, 0, len(names)-1)
	case key.Matches(msg, m.keys.Select):
		if len(names) == 0 {
			return m, nil
		}
		m.manager.SetDefaultConfig(names[m.cursor])
		m.message = fmt.Sprintf("Configuration '%s' set as default successfully!", names[m.cursor])
		m.mustPickDefault = false
		m.state = ViewMenu
		m.cursor = 0
	}
	return m, nil
}

func newNameInput() textinput.Model {
	input := textinput.New()
	input.Placeholder = "configuration name"
	input.CharLimit = 64
	input.Focus()
	return input
}

func clamp(v, low, high int) int {
	if high < low {
		return low
	}
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
