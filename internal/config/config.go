// Package config loads CLI configuration from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// FlowFile is the YAML workflow definition loaded at startup.
	FlowFile string
	LogLevel string
	HTTP     HTTPConfig
	Redis    RedisConfig
}

// HTTPConfig holds the serve command settings.
type HTTPConfig struct {
	Listen        string
	MetricsListen string
}

// RedisConfig holds optional memory-store settings. An empty Addr keeps the
// in-memory store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads configuration from kestrel.yaml (optional) and the
// environment. Env var overrides use prefix KESTREL_, e.g.
// KESTREL_REDIS_ADDR.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("flow_file", "kestrel.flows.yaml")
	v.SetDefault("log_level", "info")
	v.SetDefault("http.listen", ":8080")
	v.SetDefault("http.metrics_listen", ":2112")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetEnvPrefix("KESTREL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("kestrel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// Missing default config is fine; env and defaults apply.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	return Config{
		FlowFile: v.GetString("flow_file"),
		LogLevel: v.GetString("log_level"),
		HTTP: HTTPConfig{
			Listen:        v.GetString("http.listen"),
			MetricsListen: v.GetString("http.metrics_listen"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
	}, nil
}
