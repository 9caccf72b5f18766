package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/kestrel/internal/config"
	"github.com/aretw0/kestrel/pkg/adapters/redis"
	"github.com/aretw0/kestrel/pkg/ports"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage parked session memories",
	Long: `List, inspect, and remove session memories parked in Redis between a
workflow's halt and its continuation. Requires redis.addr in the config
or KESTREL_REDIS_ADDR.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all parked sessions",
	Run: func(cmd *cobra.Command, args []string) {
		store := getSessionStore(cmd)
		sessions, err := store.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No parked sessions found.")
			return
		}

		fmt.Println("Parked Sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect a parked session memory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID := args[0]
		store := getSessionStore(cmd)

		mem, err := store.Load(cmd.Context(), sessionID)
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(mem, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling memory: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more parked sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := getSessionStore(cmd)
		hasError := false

		for _, sessionID := range args {
			if err := store.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", sessionID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

func getSessionStore(cmd *cobra.Command) ports.MemoryStore {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Redis.Addr == "" {
		fmt.Println("Session management needs a Redis backend: set redis.addr or KESTREL_REDIS_ADDR.")
		os.Exit(1)
	}
	return redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
}
