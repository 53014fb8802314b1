package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/display"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved configurations",
	Long:  "Lists saved configurations in a table, checking each referenced provider's live model list to flag stale model selections.",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := config.NewManager()
		if err != nil {
			return err
		}
		fmt.Print(display.RenderConfigsTable(manager))
		return nil
	},
}
