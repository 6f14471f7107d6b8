package cli

import (
	"groweasy/internal/database/migration"
	dbpostgres "groweasy/internal/database/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			log := loggerFrom(ctx)

			db, err := dbpostgres.Connect(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			return migration.Runner{Log: log}.Run(ctx, db.SQLDB())
		},
	}
}
