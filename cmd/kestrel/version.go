package main

import (
	"fmt"

	kestrel "github.com/aretw0/kestrel"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kestrel version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kestrel %s\n", kestrel.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
