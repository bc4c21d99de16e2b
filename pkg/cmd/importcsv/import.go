package importcsv

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/cmd/setup"
	"github.com/f1stats/f1stats-service/pkg/config"
	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/dataset/csv"
	"github.com/f1stats/f1stats-service/pkg/dataset/postgres"
	"github.com/f1stats/f1stats-service/pkg/db/migrate"
)

var skipMigration bool

func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "imports a csv dump into the database",
		Long: `Reads the csv dump given by --csv-dir and replaces the content of the
database given by --db within one transaction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.CSVDir == "" {
				return errors.New("import requires --csv-dir")
			}
			env := setup.NewEnv(cmd.Context())
			defer env.Close()
			return importDump(cmd.Context(), env)
		},
	}
	cmd.Flags().BoolVar(&skipMigration, "skip-migration", false,
		"do not migrate the database before the import")
	return cmd
}

func importDump(ctx context.Context, env *setup.Env) error {
	start := time.Now()
	src := csv.NewSource(config.CSVDir, csv.WithLogger(env.Logger.Named("csv")))
	data, err := src.Load(ctx)
	if err != nil {
		return err
	}
	pool, err := env.Pool(ctx)
	if err != nil {
		return err
	}
	if !skipMigration {
		if err := migrate.MigrateDB(setup.PrepareDBURL(config.DB)); err != nil {
			return err
		}
	}
	store := postgres.NewStore(pool, postgres.WithStoreLogger(env.Logger.Named("postgres")))
	if err := store.Replace(ctx, data); err != nil {
		return err
	}
	env.Logger.Info("Import done",
		log.String("source", src.Name()),
		log.Any("counts", dataset.New(data).Counts()),
		log.Duration("duration", time.Since(start)))
	return nil
}
