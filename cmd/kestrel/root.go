package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kestrel",
	Short: "Kestrel is an embedded workflow kernel",
	Long: `Kestrel executes ordered chains of services against a shared memory,
with declarative input/output contracts between steps and compact
navigator strings addressing registered workflows.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default: ./kestrel.yaml)")
	rootCmd.PersistentFlags().String("flows", "", "Path to the flow file (overrides config)")
}
