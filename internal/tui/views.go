package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config/models"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	defaultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true).
				Width(12)
)

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.state {
	case ViewMenu:
		body = m.viewMenu()
	case ViewProviderForm:
		body = m.viewProviderForm()
	case ViewProviderList:
		body = m.viewProviderList()
	case ViewProviderDelete:
		body = m.viewProviderDelete()
	case ViewConfigProvider:
		body = m.viewPickList("Create Configuration", "Select provider", m.manager.ProviderNames())
	case ViewConfigModels:
		body = m.viewConfigModels()
	case ViewConfigName:
		body = m.viewConfigName()
	case ViewConfigList:
		body = m.viewConfigList()
	case ViewConfigDelete:
		body = m.viewConfigDelete()
	case ViewDefaultSelect:
		body = m.viewPickList("Set Default Configuration", "Select configuration to set as default", m.configChoices())
	}
	return body + m.viewStatus()
}

func (m Model) header(title string) string {
	return titleStyle.Render(title) + "\n" + dimStyle.Render(strings.Repeat("─", 40)) + "\n\n"
}

func (m Model) viewStatus() string {
	var b strings.Builder
	b.WriteString("\n")
	if m.busy {
		b.WriteString(warnStyle.Render("Working..."))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	if m.errorMsg != "" {
		b.WriteString(errorStyle.Render(m.errorMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(m.header("Claude Code Interceptor Configuration"))
	for i, item := range menuItems {
		line := "  " + item
		if i == m.cursor {
			line = selectedStyle.Render("> " + item)
		} else {
			line = normalStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("j/k move · enter select · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewProviderForm() string {
	var b strings.Builder
	b.WriteString(m.header("Add Provider"))

	labels := []string{"Name", "Base URL", "API Key"}
	for i, input := range m.form.inputs {
		label := labelStyle.Render(labels[i])
		if m.form.focus == i {
			label = focusedLabelStyle.Render(labels[i])
		}
		b.WriteString(label + input.View())
		b.WriteString("\n")
	}

	keyTypeLabel := labelStyle.Render("Key Type")
	if m.form.focus == fieldKeyType {
		keyTypeLabel = focusedLabelStyle.Render("Key Type")
	}
	b.WriteString(keyTypeLabel + "< " + m.form.keyType() + " >")
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("tab next field · ←/→ cycle key type · enter submit · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewProviderList() string {
	var b strings.Builder
	b.WriteString(m.header("Configured Providers"))

	for i, name := range m.manager.ProviderNames() {
		provider, _ := m.manager.Provider(name)
		line := fmt.Sprintf("  %s", name)
		if i == m.cursor {
			line = selectedStyle.Render("> " + name)
		} else {
			line = normalStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("    URL: %s", provider.BaseURL)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("    Models: %d%s", len(provider.Models), modelPreview(provider.Models))))
		b.WriteString("\n")
		if provider.APIKey != "" {
			detail := fmt.Sprintf("    Key (%s): %s", provider.APIKeyType, utils.MaskAPIKey(provider.APIKey))
			if provider.APIKeyType == models.KeyTypeEnvVar {
				detail = fmt.Sprintf("    Key (%s): $%s", provider.APIKeyType, provider.APIKey)
			}
			b.WriteString(dimStyle.Render(detail))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("r refresh models · d delete · esc back"))
	b.WriteString("\n")
	return b.String()
}

// modelPreview shows up to the first five model names.
func modelPreview(names []string) string {
	if len(names) == 0 {
		return ""
	}
	shown := names
	more := ""
	if len(names) > 5 {
		shown = names[:5]
		more = fmt.Sprintf(", +%d more", len(names)-5)
	}
	return " (" + strings.Join(shown, ", ") + more + ")"
}

func (m Model) viewProviderDelete() string {
	var b strings.Builder
	b.WriteString(m.header("Delete Provider"))
	b.WriteString(fmt.Sprintf("Delete provider '%s'?\n", m.target))

	if len(m.cascade) > 0 {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("Warning: %d associated configuration(s) will also be deleted:", len(m.cascade))))
		b.WriteString("\n")
		for _, name := range m.cascade {
			marker := ""
			if name == m.manager.DefaultConfigName() {
				marker = defaultStyle.Render(" (*default)")
			}
			b.WriteString("  - " + name + marker + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("y confirm · n cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewPickList(title, prompt string, choices []string) string {
	var b strings.Builder
	b.WriteString(m.header(title))
	b.WriteString(dimStyle.Render(prompt))
	b.WriteString("\n\n")
	for i, choice := range choices {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + choice))
		} else {
			b.WriteString(normalStyle.Render("  " + choice))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("j/k move · enter select · esc back"))
	b.WriteString("\n")
	return b.String()
}

// configChoices marks the current default in the picker.
func (m Model) configChoices() []string {
	names := m.manager.ConfigNames()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = name
		if name == m.manager.DefaultConfigName() {
			out[i] = name + " (*default)"
		}
	}
	return out
}

func (m Model) viewConfigModels() string {
	tier := models.Tiers()[m.tierIdx]
	choices := append([]string{"None"}, m.modelChoices...)
	title := fmt.Sprintf("Create Configuration (%s)", m.provider)
	prompt := fmt.Sprintf("Select model for %s (%d/%d)", tier, m.tierIdx+1, len(models.Tiers()))
	return m.viewPickList(title, prompt, choices)
}

func (m Model) viewConfigName() string {
	var b strings.Builder
	b.WriteString(m.header("Create Configuration"))
	b.WriteString("Enter a name for this configuration:\n\n  ")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("The name is normalized to lowercase letters, digits and dashes."))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter save · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewConfigList() string {
	var b strings.Builder
	b.WriteString(m.header("Saved Configurations"))

	for i, name := range m.manager.ConfigNames() {
		cfg, _ := m.manager.Config(name)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + name))
		} else {
			b.WriteString(normalStyle.Render("  " + name))
		}
		if name == m.manager.DefaultConfigName() {
			b.WriteString(defaultStyle.Render(" ✓ default"))
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("    provider: %s · haiku: %s · sonnet: %s · opus: %s",
			cfg.Provider, tierOrNA(cfg.Models, models.TierHaiku),
			tierOrNA(cfg.Models, models.TierSonnet), tierOrNA(cfg.Models, models.TierOpus))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("d delete · esc back"))
	b.WriteString("\n")
	return b.String()
}

func tierOrNA(sel models.ModelSelection, tier string) string {
	if model, ok := sel.Get(tier); ok {
		return model
	}
	return "N/A"
}

func (m Model) viewConfigDelete() string {
	var b strings.Builder
	b.WriteString(m.header("Delete Configuration"))
	if m.target == m.manager.DefaultConfigName() {
		b.WriteString(warnStyle.Render("Warning: this is the current default configuration."))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Delete configuration '%s'?\n\n", m.target))
	b.WriteString(dimStyle.Render("y confirm · n cancel"))
	b.WriteString("\n")
	return b.String()
}
