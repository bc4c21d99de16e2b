// Package csv loads the dataset from a directory containing an Ergast style
// CSV dump (races.csv, results.csv, ...). Null values are written as \N.
package csv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/model"
)

// file names of the dump
const (
	FileCircuits             = "circuits.csv"
	FileConstructors         = "constructors.csv"
	FileDrivers              = "drivers.csv"
	FileRaces                = "races.csv"
	FileStatus               = "status.csv"
	FileResults              = "results.csv"
	FileQualifying           = "qualifying.csv"
	FilePitStops             = "pit_stops.csv"
	FileLapTimes             = "lap_times.csv"
	FileDriverStandings      = "driver_standings.csv"
	FileConstructorStandings = "constructor_standings.csv"
)

var ErrMissingColumn = errors.New("missing column")

type Source struct {
	dir string
	l   *log.Logger
}

type Option func(*Source)

func WithLogger(l *log.Logger) Option {
	return func(s *Source) {
		s.l = l
	}
}

func NewSource(dir string, opts ...Option) *Source {
	ret := &Source{dir: dir, l: log.Default().Named("csv")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (s *Source) Name() string {
	return "csv:" + s.dir
}

// Load reads all files concurrently. The reference files and results are
// required, the remaining files may be absent in partial dumps.
//
//nolint:funlen // one block per file
func (s *Source) Load(ctx context.Context) (*dataset.Data, error) {
	d := &dataset.Data{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Circuits, err = readFile(ctx, s, FileCircuits, true, func(r *row) model.Circuit {
			return model.Circuit{
				ID:       r.integer("circuitId"),
				Name:     r.str("name"),
				Location: r.str("location"),
				Country:  r.str("country"),
			}
		})
		return err
	})
	g.Go(func() (err error) {
		d.Constructors, err = readFile(ctx, s, FileConstructors, true, func(r *row) model.Constructor {
			return model.Constructor{
				ID:          r.integer("constructorId"),
				Name:        r.str("name"),
				Nationality: r.str("nationality"),
			}
		})
		return err
	})
	g.Go(func() (err error) {
		d.Drivers, err = readFile(ctx, s, FileDrivers, true, func(r *row) model.Driver {
			return model.Driver{
				ID:          r.integer("driverId"),
				Code:        r.nullStr("code"),
				Forename:    r.str("forename"),
				Surname:     r.str("surname"),
				Nationality: r.str("nationality"),
			}
		})
		return err
	})
	g.Go(func() (err error) {
		d.Races, err = readFile(ctx, s, FileRaces, true, func(r *row) model.Race {
			return model.Race{
				ID:        r.integer("raceId"),
				Year:      r.integer("year"),
				Round:     r.integer("round"),
				CircuitID: r.integer("circuitId"),
				Name:      r.str("name"),
				Date:      r.date("date"),
			}
		})
		return err
	})
	g.Go(func() (err error) {
		d.Statuses, err = readFile(ctx, s, FileStatus, true, func(r *row) model.Status {
			return model.Status{ID: r.integer("statusId"), Status: r.str("status")}
		})
		return err
	})
	g.Go(func() (err error) {
		d.Results, err = readFile(ctx, s, FileResults, true, func(r *row) model.Result {
			return model.Result{
				ID:            r.integer("resultId"),
				RaceID:        r.integer("raceId"),
				DriverID:      r.integer("driverId"),
				ConstructorID: r.integer("constructorId"),
				Grid:          r.integer("grid"),
				Position:      r.nullInt("position"),
				Points:        r.float("points"),
				Laps:          r.integer("laps"),
				Rank:          r.nullInt("rank"),
				StatusID:      r.integer("statusId"),
			}
		})
		return err
	})
	g.Go(func() (err error) {
		d.Qualifying, err = readFile(ctx, s, FileQualifying, false, func(r *row) model.Qualifying {
			return model.Qualifying{
				ID:            r.integer("qualifyId"),
				RaceID:        r.integer("raceId"),
				DriverID:      r.integer("driverId"),
				ConstructorID: r.integer("constructorId"),
				Position:      r.integer("position"),
				Q1:            r.nullStr("q1"),
				Q2:            r.nullStr("q2"),
				Q3:            r.nullStr("q3"),
			}
		})
		return err
	})
	g.Go(func() (err error) {
		d.PitStops, err = readFile(ctx, s, FilePitStops, false, func(r *row) model.PitStop {
			return model.PitStop{
				RaceID:       r.integer("raceId"),
				DriverID:     r.integer("driverId"),
				Stop:         r.integer("stop"),
				Lap:          r.integer("lap"),
				Milliseconds: r.integer("milliseconds"),
			}
		})
		return err
	})
	g.Go(func() (err error) {
		d.LapTimes, err = readFile(ctx, s, FileLapTimes, false, func(r *row) model.LapTime {
			return model.LapTime{
				RaceID:       r.integer("raceId"),
				DriverID:     r.integer("driverId"),
				Lap:          r.integer("lap"),
				Position:     r.integer("position"),
				Milliseconds: r.integer("milliseconds"),
			}
		})
		return err
	})
	g.Go(func() (err error) {
		d.DriverStandings, err = readFile(ctx, s, FileDriverStandings, false, func(r *row) model.DriverStanding {
			return model.DriverStanding{
				RaceID:   r.integer("raceId"),
				DriverID: r.integer("driverId"),
				Points:   r.float("points"),
				Position: r.integer("position"),
				Wins:     r.integer("wins"),
			}
		})
		return err
	})
	g.Go(func() (err error) {
		d.ConstructorStandings, err = readFile(ctx, s, FileConstructorStandings, false,
			func(r *row) model.ConstructorStanding {
				return model.ConstructorStanding{
					RaceID:        r.integer("raceId"),
					ConstructorID: r.integer("constructorId"),
					Points:        r.float("points"),
					Position:      r.integer("position"),
					Wins:          r.integer("wins"),
				}
			})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

//nolint:whitespace // can't make both editor and linter happy
func readFile[T any](
	ctx context.Context,
	s *Source,
	name string,
	required bool,
	conv func(*row) T,
) ([]T, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			s.l.Debug("optional file not present", log.String("file", path))
			return []T{}, nil
		}
		return nil, err
	}
	defer f.Close()

	ret, err := decode(ctx, f, name, conv)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	s.l.Debug("file read", log.String("file", path), log.Int("records", len(ret)))
	return ret, nil
}
