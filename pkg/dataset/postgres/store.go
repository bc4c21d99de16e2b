package postgres

import (
	"context"
	"fmt"

	"github.com/aarondl/opt/null"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/model"
)

type Store struct {
	pool *pgxpool.Pool
	l    *log.Logger
}

type StoreOption func(*Store)

func WithStoreLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		s.l = l
	}
}

func NewStore(pool *pgxpool.Pool, opts ...StoreOption) *Store {
	ret := &Store{pool: pool, l: log.Default().Named("postgres")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Clear removes all rows. Dependent tables are cleared first.
func (s *Store) Clear(ctx context.Context) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return clearTables(ctx, tx)
	})
}

// Replace stores d within one transaction. Existing rows are removed before.
func (s *Store) Replace(ctx context.Context, d *dataset.Data) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := clearTables(ctx, tx); err != nil {
			return err
		}
		for _, table := range Tables {
			rows := tableRows(d, table)
			n, err := tx.CopyFrom(ctx,
				pgx.Identifier{table}, Columns[table], pgx.CopyFromRows(rows))
			if err != nil {
				return fmt.Errorf("copy %s: %w", table, err)
			}
			s.l.Debug("table written", log.String("table", table), log.Int("records", int(n)))
		}
		return nil
	})
}

func clearTables(ctx context.Context, tx pgx.Tx) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		table := Tables[i]
		if _, err := tx.Exec(ctx, "delete from "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// tableRows converts the records of table into rows matching Columns[table].
//
//nolint:funlen // one case per table
func tableRows(d *dataset.Data, table string) [][]any {
	switch table {
	case TableCircuit:
		return lo.Map(d.Circuits, func(c model.Circuit, _ int) []any {
			return []any{c.ID, c.Name, c.Location, c.Country}
		})
	case TableConstructor:
		return lo.Map(d.Constructors, func(c model.Constructor, _ int) []any {
			return []any{c.ID, c.Name, c.Nationality}
		})
	case TableDriver:
		return lo.Map(d.Drivers, func(dr model.Driver, _ int) []any {
			return []any{dr.ID, nullable(dr.Code), dr.Forename, dr.Surname, dr.Nationality}
		})
	case TableStatus:
		return lo.Map(d.Statuses, func(s model.Status, _ int) []any {
			return []any{s.ID, s.Status}
		})
	case TableRace:
		return lo.Map(d.Races, func(r model.Race, _ int) []any {
			return []any{r.ID, r.Year, r.Round, r.CircuitID, r.Name, r.Date}
		})
	case TableResult:
		return lo.Map(d.Results, func(r model.Result, _ int) []any {
			return []any{
				r.ID, r.RaceID, r.DriverID, r.ConstructorID, r.Grid,
				nullable(r.Position), r.Points, r.Laps, nullable(r.Rank), r.StatusID,
			}
		})
	case TableQualifying:
		return lo.Map(d.Qualifying, func(q model.Qualifying, _ int) []any {
			return []any{
				q.ID, q.RaceID, q.DriverID, q.ConstructorID, q.Position,
				nullable(q.Q1), nullable(q.Q2), nullable(q.Q3),
			}
		})
	case TablePitStop:
		return lo.Map(d.PitStops, func(p model.PitStop, _ int) []any {
			return []any{p.RaceID, p.DriverID, p.Stop, p.Lap, p.Milliseconds}
		})
	case TableLapTime:
		return lo.Map(d.LapTimes, func(l model.LapTime, _ int) []any {
			return []any{l.RaceID, l.DriverID, l.Lap, l.Position, l.Milliseconds}
		})
	case TableDriverStanding:
		return lo.Map(d.DriverStandings, func(s model.DriverStanding, _ int) []any {
			return []any{s.RaceID, s.DriverID, s.Points, s.Position, s.Wins}
		})
	case TableConstructorStanding:
		return lo.Map(d.ConstructorStandings, func(s model.ConstructorStanding, _ int) []any {
			return []any{s.RaceID, s.ConstructorID, s.Points, s.Position, s.Wins}
		})
	}
	return nil
}

func nullable[T any](v null.Val[T]) any {
	if x, ok := v.Get(); ok {
		return x
	}
	return nil
}
