package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aretw0/kestrel"
	"github.com/aretw0/kestrel/internal/config"
	"github.com/aretw0/kestrel/internal/logging"
	"github.com/aretw0/kestrel/pkg/adapters/file"
	"github.com/aretw0/kestrel/pkg/domain"
	"github.com/aretw0/kestrel/pkg/services"
	"github.com/spf13/cobra"
)

// setup loads config, builds a kernel with the built-in services, and
// registers the flow file's workflows (when present).
func setup(cmd *cobra.Command, hooks domain.LifecycleHooks) (*kestrel.Kernel, config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	if flows, _ := cmd.Flags().GetString("flows"); flows != "" {
		cfg.FlowFile = flows
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	k := kestrel.New(
		kestrel.WithLogger(logger),
		kestrel.WithLifecycleHooks(hooks),
	)
	services.RegisterBuiltins(k.Registry(), os.Stdout)

	if cfg.FlowFile != "" {
		def, err := file.Load(cfg.FlowFile)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("no flow file found", "path", cfg.FlowFile)
				return k, cfg, nil
			}
			return nil, config.Config{}, fmt.Errorf("failed to load flows: %w", err)
		}
		def.Register(k.Registry())
		logger.Debug("flows registered", "path", cfg.FlowFile, "count", len(def.Workflows))
	}

	return k, cfg, nil
}
