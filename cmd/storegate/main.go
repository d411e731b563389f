package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/storegate/internal/config"
	"github.com/dropDatabas3/storegate/internal/observability/logger"
)

var version = "dev"

func main() {
	// .env es opcional; las variables del entorno siempre ganan.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{configPath: envOr("CONFIG_PATH", "configs/config.yaml")}

	root := &cobra.Command{
		Use:           "storegate",
		Short:         "Aislamiento por tenant y gating de suscripción para el back office",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "Ruta al config YAML (env CONFIG_PATH)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newTokenCmd(opts))
	root.AddCommand(newGateCmd(opts))
	return root
}

// load lee la config e inicializa el logger global.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Config{
		Env:         cfg.LogEnv(),
		Level:       cfg.Log.Level,
		ServiceName: "storegate",
		Version:     version,
	})
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
