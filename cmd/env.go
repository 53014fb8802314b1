package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config"
)

var envUseConfig string

func init() {
	envCmd.Flags().StringVar(&envUseConfig, "use-config", "", "use a specific saved configuration")
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print shell export lines for a configuration",
	Long: `Prints unset/export lines for the default (or --use-config) configuration,
for shell initialization: eval "$(cci env)".

Note: a provider with an envvar-typed API key exports an empty
ANTHROPIC_API_KEY when the named host variable is unset. There is no
failure; the launch simply carries no credential.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := config.NewManager()
		if err != nil {
			return err
		}
		env := resolveEnvironment(manager, envUseConfig)
		fmt.Print(formatEnvScript(env))
		return nil
	},
}

// formatEnvScript clears every projected variable first, then exports the
// non-empty ones, so stale values never leak between configurations.
func formatEnvScript(env map[string]string) string {
	var b strings.Builder
	for _, name := range config.ProjectedEnvNames() {
		fmt.Fprintf(&b, "unset %s\n", name)
	}
	for _, name := range config.ProjectedEnvNames() {
		if value := env[name]; value != "" {
			fmt.Fprintf(&b, "export %s=\"%s\"\n", name, value)
		}
	}
	return b.String()
}
