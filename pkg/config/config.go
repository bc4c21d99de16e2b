package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB                string // connection string for the database
	MaxConns          int32  // max connections of the database pool, 0 uses the pgx default
	Source            string // dataset source (csv, postgres)
	CSVDir            string // directory containing the csv dump
	SnapshotTTL       string // duration a loaded dataset snapshot is reused
	WaitForServices   string // duration to wait for other services to be ready
	LogLevel          string // sets the log level (zap log level values)
	SQLLogLevel       string // sets the log level for sql subsystem
	LogFormat         string // text vs json
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint for telemetry
	OutputFormat      string // json vs table
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)
