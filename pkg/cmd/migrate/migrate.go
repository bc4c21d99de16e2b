package migrate

import (
	"github.com/spf13/cobra"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/cmd/setup"
	"github.com/f1stats/f1stats-service/pkg/config"
	"github.com/f1stats/f1stats-service/pkg/db/migrate"
	"github.com/f1stats/f1stats-service/pkg/utils"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "performs database migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := setup.NewEnv(cmd.Context())
			defer env.Close()
			return startMigration(cmd, env)
		},
	}
	return cmd
}

func startMigration(cmd *cobra.Command, env *setup.Env) error {
	timeout := setup.WaitTimeout(env.Logger)
	if addr := utils.ExtractFromDBURL(config.DB); addr != "" {
		if err := utils.WaitForTCP(cmd.Context(), addr, timeout); err != nil {
			return err
		}
	}
	dbURL := setup.PrepareDBURL(config.DB)
	if err := migrate.MigrateDB(dbURL); err != nil {
		return err
	}
	version, dirty, err := migrate.Version(dbURL)
	if err != nil {
		return err
	}
	env.Logger.Info("Database migrated",
		log.Int("version", int(version)),
		log.Any("dirty", dirty))
	return nil
}
