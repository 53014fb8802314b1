package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eleqtrizit/Claude-Code-Interceptor/config"
	"github.com/eleqtrizit/Claude-Code-Interceptor/internal/discovery"
)

func init() {
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping <provider>",
	Short: "Test a provider's models endpoint",
	Long:  "Probes a configured provider's base URL for its models-listing endpoint and reports reachability, latency and the live model count.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := config.NewManager()
		if err != nil {
			return err
		}

		name := args[0]
		provider, ok := manager.Provider(name)
		if !ok {
			return fmt.Errorf("provider '%s' not found", name)
		}

		fmt.Printf("Testing provider: %s\n", name)
		client := discovery.NewClient()

		start := time.Now()
		endpoint, ok := client.DiscoverEndpoint(provider.BaseURL)
		duration := time.Since(start)
		if !ok {
			fmt.Fprintf(os.Stderr, "❌ No models endpoint reachable under %s\n", provider.BaseURL)
			os.Exit(1)
		}

		live, ok := client.ProbeModelNames(provider.BaseURL, provider.APIKey)
		fmt.Printf("✅ Endpoint: %s\n", endpoint)
		fmt.Printf("   Response Time: %dms\n", duration.Milliseconds())
		switch {
		case !ok:
			fmt.Println("⚠️  Endpoint answered the probe but the model listing failed.")
		case len(live) == 0:
			fmt.Println("⚠️  Provider is reachable but serves no models.")
		default:
			fmt.Printf("   Live Models: %d (cached: %d)\n", len(live), len(provider.Models))
		}
		return nil
	},
}
