package main

import (
	"fmt"
	"os"

	"github.com/aretw0/kestrel/internal/presentation"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/spf13/cobra"
)

// showCmd prints the catalog of registered navigators and their steps.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List the registered navigators and their workflow steps",
	Run: func(cmd *cobra.Command, args []string) {
		k, _, err := setup(cmd, domain.LifecycleHooks{})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		navigators := make(map[string]domain.Workflow)
		for _, root := range k.Navigators() {
			if wf, ok := k.Registry().Navigator(root); ok {
				navigators[root] = wf
			}
		}

		catalog := presentation.Catalog{Navigators: navigators}
		fmt.Print(catalog.Render())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
