package cli

import (
	"groweasy/internal/database/migration"
	dbpostgres "groweasy/internal/database/postgres"
	"groweasy/internal/database/seeder"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSeedCmd() *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the admin account and sample courses and jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			log := loggerFrom(ctx)

			v := viper.New()
			v.AutomaticEnv()
			if err := v.BindPFlag("ADMIN_EMAIL", cmd.Flags().Lookup("admin-email")); err != nil {
				return err
			}
			if err := v.BindPFlag("ADMIN_PASSWORD", cmd.Flags().Lookup("admin-password")); err != nil {
				return err
			}

			db, err := dbpostgres.Connect(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if migrateFirst {
				if err := (migration.Runner{Log: log}).Run(ctx, db.SQLDB()); err != nil {
					return err
				}
			}

			admin := seeder.AdminSeeder{Email: v.GetString("ADMIN_EMAIL"), Password: v.GetString("ADMIN_PASSWORD")}
			return seeder.Runner{Seeders: seeder.Defaults(admin), Log: log}.Run(ctx, db)
		},
	}
	cmd.Flags().String("admin-email", "admin@groweasy.ai", "admin account email (env ADMIN_EMAIL)")
	cmd.Flags().String("admin-password", "", "admin account password, at least 8 characters (env ADMIN_PASSWORD)")
	cmd.Flags().BoolVar(&migrateFirst, "migrate", true, "apply migrations before seeding")
	return cmd
}
