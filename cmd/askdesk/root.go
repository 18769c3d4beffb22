package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/askdeskhq/askdesk/internal/config"
	"github.com/askdeskhq/askdesk/pkg/adapters/memory"
	"github.com/askdeskhq/askdesk/pkg/adapters/redis"
	"github.com/askdeskhq/askdesk/pkg/adapters/sqlite"
	"github.com/askdeskhq/askdesk/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "askdesk",
	Short: "askdesk is a support inquiry board",
	Long:  `askdesk runs a support inquiry board: visitors post questions, optionally sealed behind a password, and operators answer them.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "askdesk.yaml", "Path to the configuration file")
}

// loadConfig resolves the configuration for a command invocation. The
// default path may be absent; an explicitly flagged one may not.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags().Changed("config"))
}

// openStore builds the configured record store. The returned closer is a
// no-op for backends without connections to release.
func openStore(cfg config.Config) (ports.RecordStore, func() error, error) {
	switch cfg.Store.Backend {
	case "memory":
		return memory.NewStore(), func() error { return nil }, nil
	case "sqlite":
		store, err := sqlite.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	case "redis":
		r := cfg.Store.Redis
		var opts []redis.Option
		if r.Prefix != "" {
			opts = append(opts, redis.WithPrefix(r.Prefix))
		}
		store := redis.New(r.Addr, r.Password, r.DB, opts...)
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
