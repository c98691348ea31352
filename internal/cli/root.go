// Package cli wires the voltdesk commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voltdesk/voltdesk/internal/api"
	"github.com/voltdesk/voltdesk/internal/daemon"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "voltdesk",
	Short: "Battery sales and installation back office",
	Long: `VoltDesk runs the back office for a battery sales and installation
business: inventory, order dispatch, technician (KTV) jobs, agent debt
tracking and volume discount policy. State lives in a local SQLite
database; the admin console and the technician app talk to the HTTP API.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", daemon.DefaultConfigPath(),
		"Path to the TOML config file")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the voltdesk version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("voltdesk %s\n", api.Version)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
