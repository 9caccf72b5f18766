package main

import (
	"fmt"
	"sort"

	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/spf13/cobra"
)

// parseCmd decodes a navigator without executing anything, printing the
// root and the parameter map. Useful for debugging flow-file roots.
var parseCmd = &cobra.Command{
	Use:   "parse <navigator>",
	Short: "Decode a navigator string and print its root and parameters",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		escaped, _ := cmd.Flags().GetBool("escaped")

		k, _, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		root, params := k.ParseNavigator(args[0], escaped)
		fmt.Printf("root: %s\n", root)

		keys := make([]string, 0, len(params))
		for key := range params {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  %s = %s\n", key, params[key])
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().Bool("escaped", false, "Treat the navigator as identifier-escaped ('_' for '#', '.' for '=')")
}
