//nolint:whitespace,lll,funlen // ok for tests
package setup

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/config"
)

func TestPrepareDBURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "plain", url: "postgresql://u:p@host/db", want: "postgresql://u:p@host/db?sslmode=disable"},
		{name: "with params", url: "postgresql://u:p@host/db?x=y", want: "postgresql://u:p@host/db?x=y&sslmode=disable"},
		{name: "already set", url: "postgresql://u:p@host/db?sslmode=disable", want: "postgresql://u:p@host/db?sslmode=disable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrepareDBURL(tt.url))
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, log.WarnLevel, ParseLogLevel("warn", log.InfoLevel))
	assert.Equal(t, log.InfoLevel, ParseLogLevel("nonsense", log.InfoLevel))
}

func TestWaitTimeout(t *testing.T) {
	config.WaitForServices = "3s"
	assert.Equal(t, 3*time.Second, WaitTimeout(log.NewNop()))
	config.WaitForServices = "soon"
	assert.Equal(t, 60*time.Second, WaitTimeout(log.NewNop()))
}

func TestSourceSelection(t *testing.T) {
	env := &Env{Logger: log.NewNop(), SQLLogger: log.NewNop()}

	config.Source = config.SourceCSV
	config.CSVDir = ""
	_, err := env.Source(context.Background())
	assert.Error(t, err)

	config.CSVDir = t.TempDir()
	src, err := env.Source(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "csv:"+config.CSVDir, src.Name())

	config.Source = "ftp"
	_, err = env.Source(context.Background())
	assert.Error(t, err)
}

func TestProviderInvalidTTL(t *testing.T) {
	env := &Env{Logger: log.NewNop(), SQLLogger: log.NewNop()}
	config.Source = config.SourceCSV
	config.CSVDir = t.TempDir()
	config.SnapshotTTL = "later"
	_, err := env.Provider(context.Background())
	assert.Error(t, err)

	config.SnapshotTTL = "1m"
	p, err := env.Provider(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestPoolOptions(t *testing.T) {
	env := &Env{Logger: log.NewNop(), SQLLogger: log.NewNop()}
	tests := []struct {
		name     string
		maxConns int32
		want     int32
	}{
		{name: "configured limit", maxConns: 3, want: 3},
		{name: "pgx default", maxConns: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config.MaxConns = tt.maxConns
			cfg, err := pgxpool.ParseConfig("postgresql://u:p@localhost:5432/f1stats")
			require.NoError(t, err)
			defaultConns := cfg.MaxConns
			for _, opt := range env.poolOptions() {
				opt(cfg)
			}
			assert.NotNil(t, cfg.ConnConfig.Tracer)
			if tt.want == 0 {
				assert.Equal(t, defaultConns, cfg.MaxConns)
			} else {
				assert.Equal(t, tt.want, cfg.MaxConns)
			}
		})
	}
	config.MaxConns = 0
}
