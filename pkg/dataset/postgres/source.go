// Package postgres loads the dataset from a database created by the
// migrations in pkg/db/migrate.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/samber/lo"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
	"golang.org/x/sync/errgroup"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/model"
)

// table names
const (
	TableCircuit             = "circuit"
	TableConstructor         = "constructor"
	TableDriver              = "driver"
	TableStatus              = "status"
	TableRace                = "race"
	TableResult              = "result"
	TableQualifying          = "qualifying"
	TablePitStop             = "pit_stop"
	TableLapTime             = "lap_time"
	TableDriverStanding      = "driver_standing"
	TableConstructorStanding = "constructor_standing"
)

// Tables lists all tables in dependency order. Referenced tables come first.
var Tables = []string{
	TableCircuit,
	TableConstructor,
	TableDriver,
	TableStatus,
	TableRace,
	TableResult,
	TableQualifying,
	TablePitStop,
	TableLapTime,
	TableDriverStanding,
	TableConstructorStanding,
}

// Columns holds the columns of each table in the order used by the importer.
var Columns = map[string][]string{
	TableCircuit:     {"circuit_id", "name", "location", "country"},
	TableConstructor: {"constructor_id", "name", "nationality"},
	TableDriver:      {"driver_id", "code", "forename", "surname", "nationality"},
	TableStatus:      {"status_id", "status"},
	TableRace:        {"race_id", "year", "round", "circuit_id", "name", "date"},
	TableResult: {
		"result_id", "race_id", "driver_id", "constructor_id", "grid",
		"position", "points", "laps", "rank", "status_id",
	},
	TableQualifying: {
		"qualify_id", "race_id", "driver_id", "constructor_id", "position",
		"q1", "q2", "q3",
	},
	TablePitStop:             {"race_id", "driver_id", "stop", "lap", "milliseconds"},
	TableLapTime:             {"race_id", "driver_id", "lap", "position", "milliseconds"},
	TableDriverStanding:      {"race_id", "driver_id", "points", "position", "wins"},
	TableConstructorStanding: {"race_id", "constructor_id", "points", "position", "wins"},
}

type Source struct {
	conn bob.Executor
	l    *log.Logger
}

type Option func(*Source)

func WithLogger(l *log.Logger) Option {
	return func(s *Source) {
		s.l = l
	}
}

func NewSourceFromPool(pool *pgxpool.Pool, opts ...Option) *Source {
	return NewSource(bob.NewDB(stdlib.OpenDBFromPool(pool)), opts...)
}

func NewSource(conn bob.Executor, opts ...Option) *Source {
	ret := &Source{conn: conn, l: log.Default().Named("postgres")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (s *Source) Name() string {
	return "postgres"
}

func (s *Source) Load(ctx context.Context) (*dataset.Data, error) {
	d := &dataset.Data{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Circuits, err = loadTable[model.Circuit](ctx, s, TableCircuit, "circuit_id")
		return err
	})
	g.Go(func() (err error) {
		d.Constructors, err = loadTable[model.Constructor](ctx, s, TableConstructor,
			"constructor_id")
		return err
	})
	g.Go(func() (err error) {
		d.Drivers, err = loadTable[model.Driver](ctx, s, TableDriver, "driver_id")
		return err
	})
	g.Go(func() (err error) {
		d.Statuses, err = loadTable[model.Status](ctx, s, TableStatus, "status_id")
		return err
	})
	g.Go(func() (err error) {
		d.Races, err = loadTable[model.Race](ctx, s, TableRace, "year", "round")
		return err
	})
	g.Go(func() (err error) {
		d.Results, err = loadTable[model.Result](ctx, s, TableResult, "result_id")
		return err
	})
	g.Go(func() (err error) {
		d.Qualifying, err = loadTable[model.Qualifying](ctx, s, TableQualifying,
			"qualify_id")
		return err
	})
	g.Go(func() (err error) {
		d.PitStops, err = loadTable[model.PitStop](ctx, s, TablePitStop,
			"race_id", "driver_id", "stop")
		return err
	})
	g.Go(func() (err error) {
		d.LapTimes, err = loadTable[model.LapTime](ctx, s, TableLapTime,
			"race_id", "driver_id", "lap")
		return err
	})
	g.Go(func() (err error) {
		d.DriverStandings, err = loadTable[model.DriverStanding](ctx, s,
			TableDriverStanding, "race_id", "driver_id")
		return err
	})
	g.Go(func() (err error) {
		d.ConstructorStandings, err = loadTable[model.ConstructorStanding](ctx, s,
			TableConstructorStanding, "race_id", "constructor_id")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

//nolint:whitespace // can't make both editor and linter happy
func loadTable[T any](
	ctx context.Context,
	s *Source,
	table string,
	orderBy ...string,
) ([]T, error) {
	sqlMods := make(bob.Mods[*dialect.SelectQuery], 0)
	sqlMods = append(sqlMods,
		sm.Columns(lo.ToAnySlice(Columns[table])...),
		sm.From(table))
	for _, col := range orderBy {
		sqlMods = append(sqlMods, sm.OrderBy(col).Asc())
	}
	ret, err := bob.All(ctx, s.conn, psql.Select(sqlMods...), scan.StructMapper[T]())
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	s.l.Debug("table read", log.String("table", table), log.Int("records", len(ret)))
	return ret, nil
}
