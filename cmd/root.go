// Package cmd wires the cci command line. The root command is a thin
// launcher around the external claude CLI; all state lives in the config
// store and all editing happens in the TUI.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/display"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/launcher"
)

// Version information, injected from main.
var (
	version string
	commit  string
	date    string
)

// SetVersionInfo sets the version information.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

var (
	useConfig string
	noLaunch  bool
)

var rootCmd = &cobra.Command{
	Use:   "cci [claude args...]",
	Short: "Configuration manager and launcher for the Claude Code CLI",
	Long: `cci manages named provider endpoints and saved model configurations for
the Claude Code CLI. Run without a subcommand it resolves a configuration
(the default, or --use-config), projects the matching ANTHROPIC_*
environment and launches claude, passing every remaining argument through.`,
	Args:               cobra.ArbitraryArgs,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	SilenceUsage:       true,
	RunE:               runRoot,
}

// Execute executes the root command.
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`cci {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVar(&useConfig, "use-config", "", "launch with a specific saved configuration")
	rootCmd.Flags().BoolVar(&noLaunch, "no-launch", false, "print the projected environment without launching claude")
}

// resolveEnvironment projects the environment for the requested
// configuration, falling back to the (repaired) default and finally to an
// empty projection, which leaves the host environment untouched.
func resolveEnvironment(manager *config.Manager, name string) map[string]string {
	if name != "" {
		if resolved, ok := manager.LoadConfigByName(name); ok {
			return config.ProjectEnvironment(resolved, nil)
		}
		fmt.Fprintf(os.Stderr, "Warning: configuration '%s' not found. Using default configuration.\n", name)
	}

	if manager.CheckAndRefreshDefault() {
		if resolved, ok := manager.LoadConfigByName(manager.DefaultConfigName()); ok {
			return config.ProjectEnvironment(resolved, nil)
		}
	}
	return map[string]string{}
}

func runRoot(cmd *cobra.Command, args []string) error {
	manager, err := config.NewManager()
	if err != nil {
		return err
	}

	launch := launcher.New()
	launch.LoadDotenv()

	env := resolveEnvironment(manager, useConfig)
	fmt.Print(display.RenderEnvironment(env, args))

	if noLaunch {
		return nil
	}

	code, err := launch.Run(args, env)
	if err != nil {
		if errors.Is(err, launcher.ErrCommandNotFound) {
			return fmt.Errorf("Claude Code CLI ('claude') not found. Please ensure it's installed and in your PATH")
		}
		return err
	}
	os.Exit(code)
	return nil
}
