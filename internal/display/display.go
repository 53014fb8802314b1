// Package display renders the pre-launch environment echo and the saved
// configurations table shared by the list command and the editor.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/utils"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	validStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	staleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	unverifiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	defaultMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)
)

// RenderEnvironment formats the projected variables and the command line
// about to run. The API key is masked.
func RenderEnvironment(env map[string]string, args []string) string {
	var b strings.Builder

	if len(env) > 0 {
		b.WriteString(headingStyle.Render("Environment Variables:"))
		b.WriteString("\n")
		for _, name := range orderedEnvNames(env) {
			value := env[name]
			if name == config.EnvAPIKey {
				value = utils.MaskAPIKey(value)
			}
			fmt.Fprintf(&b, "  %s=%s\n", name, value)
		}
		b.WriteString("\n")
	}

	b.WriteString(headingStyle.Render("Command:"))
	b.WriteString("\n  claude")
	if len(args) > 0 {
		b.WriteString(" " + strings.Join(args, " "))
	}
	b.WriteString("\n")
	return b.String()
}

// orderedEnvNames lists the projector's variables first, in its display
// order, then anything else sorted.
func orderedEnvNames(env map[string]string) []string {
	var names []string
	seen := map[string]bool{}
	for _, name := range config.ProjectedEnvNames() {
		if _, ok := env[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range env {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// FormatModelCell colors a saved model identifier against a provider's live
// model list: red when stale (missing from the live list), yellow when the
// provider was unreachable (live is nil), plain when verified. An empty
// identifier renders as N/A.
func FormatModelCell(model string, live []string) string {
	if model == "" {
		return dimStyle.Render("N/A")
	}
	if live == nil {
		return unverifiedStyle.Render(model)
	}
	for _, m := range live {
		if m == model {
			return validStyle.Render(model)
		}
	}
	return staleStyle.Render(model)
}

// RenderConfigsTable renders every saved configuration with stale-model
// detection, performing one live discovery call per referenced provider.
func RenderConfigsTable(m *config.Manager) string {
	names := m.ConfigNames()
	if len(names) == 0 {
		return unverifiedStyle.Render("No saved configurations found.") + "\n"
	}

	// One live probe per provider, cached, so N configs on one provider
	// cost a single round trip.
	liveByProvider := map[string][]string{}
	probed := map[string]bool{}
	liveFor := func(provider string) []string {
		if !probed[provider] {
			liveByProvider[provider] = m.GetLiveModelsForProvider(provider)
			probed[provider] = true
		}
		return liveByProvider[provider]
	}

	defaultName := m.DefaultConfigName()
	anyUnreachable := false

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("NAME", "PROVIDER", "HAIKU", "SONNET", "OPUS", "DEFAULT")

	for _, name := range names {
		cfg, ok := m.Config(name)
		if !ok {
			continue
		}
		live := liveFor(cfg.Provider)
		if live == nil {
			anyUnreachable = true
		}

		row := []string{name, cfg.Provider}
		for _, tier := range []string{"haiku", "sonnet", "opus"} {
			model, _ := cfg.Models.Get(tier)
			row = append(row, FormatModelCell(model, live))
		}
		mark := ""
		if name == defaultName {
			mark = defaultMarkStyle.Render("✓")
		}
		row = append(row, mark)
		t.Row(row...)
	}

	out := t.Render() + "\n"
	if anyUnreachable {
		out += dimStyle.Render("Legend: ") +
			validStyle.Render("valid") + dimStyle.Render(" | ") +
			unverifiedStyle.Render("unverified (API unavailable)") + dimStyle.Render(" | ") +
			staleStyle.Render("stale") + "\n"
	}
	return out
}
