// Package setup wires the configured loggers, telemetry and dataset source
// for the commands.
package setup

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgx-contrib/pgxtrace"
	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/config"
	"github.com/f1stats/f1stats-service/pkg/dataset"
	"github.com/f1stats/f1stats-service/pkg/dataset/csv"
	pgsource "github.com/f1stats/f1stats-service/pkg/dataset/postgres"
	"github.com/f1stats/f1stats-service/pkg/db/postgres"
	"github.com/f1stats/f1stats-service/pkg/utils"
)

// Env holds the resources shared by a command run.
type Env struct {
	Logger    *log.Logger
	SQLLogger *log.Logger
	telemetry *config.Telemetry
	pool      *pgxpool.Pool
}

func ParseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// NewEnv creates the loggers according to config.LogFormat and installs the
// logger as default. Telemetry is started if enabled.
func NewEnv(ctx context.Context) *Env {
	ret := &Env{}
	switch config.LogFormat {
	case "json":
		ret.Logger = log.New(
			os.Stderr,
			ParseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		ret.SQLLogger = log.New(
			os.Stderr,
			ParseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		ret.Logger = log.DevLogger(
			os.Stderr,
			ParseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		ret.SQLLogger = log.DevLogger(
			os.Stderr,
			ParseLogLevel(config.SQLLogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	log.ResetDefault(ret.Logger)

	if config.EnableTelemetry {
		ret.Logger.Info("Enabling telemetry")
		var err error
		if ret.telemetry, err = config.SetupTelemetry(ctx); err != nil {
			ret.Logger.Warn("Could not setup telemetry", log.ErrorField(err))
		}
		err = otlpruntime.Start(otlpruntime.WithMinimumReadMemStatsInterval(time.Second))
		if err != nil {
			ret.Logger.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}
	return ret
}

// Pool returns a connection pool for config.DB. The pool is created on first
// use after the database is reachable.
func (e *Env) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	if e.pool != nil {
		return e.pool, nil
	}
	if addr := utils.ExtractFromDBURL(config.DB); addr != "" {
		if err := utils.WaitForTCP(ctx, addr, WaitTimeout(e.Logger)); err != nil {
			return nil, fmt.Errorf("database not ready: %w", err)
		}
	}
	var err error
	e.pool, err = postgres.InitWithURL(ctx, PrepareDBURL(config.DB), e.poolOptions()...)
	if err != nil {
		return nil, err
	}
	return e.pool, nil
}

// poolOptions returns the tracers and limits configured for the pool.
func (e *Env) poolOptions() []postgres.PoolConfigOption {
	pgTracer := pgxtrace.CompositeQueryTracer{
		postgres.NewLogTracer(e.SQLLogger.Named("sql"), log.DebugLevel),
	}
	if e.telemetry != nil {
		pgTracer = append(pgTracer, postgres.NewOtlpTracer())
	}
	ret := []postgres.PoolConfigOption{postgres.WithTracer(pgTracer)}
	if config.MaxConns > 0 {
		ret = append(ret, postgres.WithMaxConns(config.MaxConns))
	}
	return ret
}

// WaitTimeout returns config.WaitForServices, 60s if the value is invalid.
func WaitTimeout(l *log.Logger) time.Duration {
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		l.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		return 60 * time.Second
	}
	return timeout
}

// Source returns the dataset source selected by config.Source.
func (e *Env) Source(ctx context.Context) (dataset.Source, error) {
	switch config.Source {
	case config.SourceCSV:
		if config.CSVDir == "" {
			return nil, fmt.Errorf("source %s requires --csv-dir", config.SourceCSV)
		}
		return csv.NewSource(config.CSVDir,
			csv.WithLogger(e.Logger.Named("csv"))), nil
	case config.SourcePostgres:
		pool, err := e.Pool(ctx)
		if err != nil {
			return nil, err
		}
		return pgsource.NewSourceFromPool(pool,
			pgsource.WithLogger(e.Logger.Named("postgres"))), nil
	default:
		return nil, fmt.Errorf("unknown source %q", config.Source)
	}
}

// Provider wraps the configured source with the snapshot ttl.
func (e *Env) Provider(ctx context.Context) (*dataset.Provider, error) {
	src, err := e.Source(ctx)
	if err != nil {
		return nil, err
	}
	ttl, err := time.ParseDuration(config.SnapshotTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot ttl: %w", err)
	}
	return dataset.NewProvider(src,
		dataset.WithTTL(ttl),
		dataset.WithLogger(e.Logger.Named("dataset"))), nil
}

// Close releases the pool and flushes telemetry and logs.
func (e *Env) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
	if e.telemetry != nil {
		e.telemetry.Shutdown()
	}
	//nolint:errcheck // stderr sync may fail on some platforms
	e.Logger.Sync()
}

// PrepareDBURL adds sslmode=disable unless the url already carries it.
func PrepareDBURL(url string) string {
	options := "sslmode=disable"
	if strings.Contains(url, options) {
		return url
	}
	if strings.Contains(url, "?") {
		return fmt.Sprintf("%s&%s", url, options)
	}
	return fmt.Sprintf("%s?%s", url, options)
}
