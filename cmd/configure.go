package cmd

import (
	"github.com/spf13/cobra"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/tui"
)

func init() {
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure model providers and saved configurations",
	Long:  "Opens the interactive editor for providers, model selections, saved configurations and the default configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := config.NewManager()
		if err != nil {
			return err
		}
		return tui.Run(manager)
	},
}
