package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/spf13/cobra"
)

// runCmd launches a navigator string against the registered flows.
var runCmd = &cobra.Command{
	Use:   "run <navigator>",
	Short: "Resolve a navigator string and run the matching workflow",
	Long: `Loads the flow file, registers its workflows, and launches the given
navigator. Exits non-zero when the launch ends invalid or the root is
not registered.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		escaped, _ := cmd.Flags().GetBool("escaped")

		k, _, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		valid, err := k.Launch(context.Background(), args[0], escaped, nil)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if !valid {
			fmt.Println("launch finished invalid")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("escaped", false, "Treat the navigator as identifier-escaped ('_' for '#', '.' for '=')")
}
