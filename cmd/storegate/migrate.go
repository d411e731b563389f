package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/storegate/internal/config"
	"github.com/dropDatabas3/storegate/internal/store/pg"
	"github.com/dropDatabas3/storegate/migrations/postgres"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones embebidas sobre Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if dsn == "" {
				if !strings.EqualFold(cfg.Storage.Driver, "postgres") {
					return errors.New("migrate requires storage.driver=postgres or --dsn")
				}
				dsn = cfg.Storage.DSN
			}

			s, err := pg.New(cmd.Context(), dsn, pg.PoolConfig{
				MaxConns:        2,
				ConnMaxLifetime: config.Duration(cfg.Storage.Postgres.ConnMaxLifetime, 0),
			})
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.Migrate(cmd.Context(), migrations.CoreFS, migrations.CoreDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration file(s)\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "DSN de Postgres (default: storage.dsn)")
	return cmd
}
