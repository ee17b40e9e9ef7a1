package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spigell/hh-matcher/internal/store/sqlstore"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations to the configured sql store",
	Run: func(cmd *cobra.Command, _ []string) {
		runMigrate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command) {
	rt := newSession()
	defer rt.finish()

	cfg := rt.config.Store
	if cfg.Driver == "memory" {
		rt.logger.Info("memory store has no schema; nothing to migrate")
		return
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	st, err := sqlstore.Open(ctx, sqlstore.Options{Driver: cfg.Driver, DSN: cfg.DSN}, rt.logger)
	if err != nil {
		rt.logger.Fatal("opening the store", zap.Error(err))
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		rt.logger.Fatal("migrating", zap.Error(err))
	}
}
