package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aarondl/opt/omit"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/f1stats/f1stats-service/log"
	"github.com/f1stats/f1stats-service/pkg/cmd/setup"
	"github.com/f1stats/f1stats-service/pkg/config"
	"github.com/f1stats/f1stats-service/pkg/presentation"
	"github.com/f1stats/f1stats-service/pkg/report"
)

const (
	outputJSON  = "json"
	outputTable = "table"
	allReports  = "all"
)

// flag values, converted into report.Params by params
type paramFlags struct {
	season        int
	driverID      int
	driver2ID     int
	circuitID     int
	constructorID int
	window        int
	limit         int
	minSample     int
}

func NewReportCmd() *cobra.Command {
	pf := &paramFlags{}
	cmd := &cobra.Command{
		Use:   "report <name>|all",
		Short: "runs a report and prints the result",
		Long: `Runs the named report on the configured dataset.
The name "all" runs every report that does not need a driver parameter.
Use the command "reports" to list the available reports.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := setup.NewEnv(cmd.Context())
			defer env.Close()
			provider, err := env.Provider(cmd.Context())
			if err != nil {
				return err
			}
			engine := report.NewEngine(provider,
				report.WithLogger(env.Logger.Named("report")))
			return execute(cmd.Context(), engine, os.Stdout, args[0],
				pf.params(cmd.Flags()), config.OutputFormat)
		},
	}
	cmd.Flags().IntVar(&pf.season, "season", 0,
		"season to analyze (default latest season in dataset)")
	cmd.Flags().IntVar(&pf.driverID, "driver", 0, "driver id")
	cmd.Flags().IntVar(&pf.driver2ID, "driver2", 0,
		"second driver id (head-to-head)")
	cmd.Flags().IntVar(&pf.circuitID, "circuit", 0, "circuit id")
	cmd.Flags().IntVar(&pf.constructorID, "constructor", 0, "constructor id")
	cmd.Flags().IntVar(&pf.window, "window", 0,
		"number of races used by window based reports (0: report default)")
	cmd.Flags().IntVar(&pf.limit, "limit", 0,
		"max number of rows or positions (0: report default)")
	cmd.Flags().IntVar(&pf.minSample, "min-sample", 0,
		"min number of samples for an entry to be listed (0: report default)")
	cmd.Flags().StringVarP(&config.OutputFormat, "output", "o", outputTable,
		"output format (table, json)")
	return cmd
}

func NewReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "lists the available reports",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			listReports(os.Stdout)
		},
	}
}

// params converts the flags that were set on the command line.
func (pf *paramFlags) params(flags *pflag.FlagSet) report.Params {
	opt := func(name string, v int) omit.Val[int] {
		if flags.Changed(name) {
			return omit.From(v)
		}
		return omit.Val[int]{}
	}
	return report.Params{
		Season:        opt("season", pf.season),
		DriverID:      opt("driver", pf.driverID),
		Driver2ID:     opt("driver2", pf.driver2ID),
		CircuitID:     opt("circuit", pf.circuitID),
		ConstructorID: opt("constructor", pf.constructorID),
		Window:        pf.window,
		Limit:         pf.limit,
		MinSample:     pf.minSample,
	}
}

//nolint:whitespace // can't make both editor and linter happy
func execute(
	ctx context.Context,
	engine *report.Engine,
	w io.Writer,
	name string,
	p report.Params,
	format string,
) error {
	if format != outputJSON && format != outputTable {
		return fmt.Errorf("unknown output format %q", format)
	}
	if name == allReports {
		res, err := engine.RunAll(ctx, p)
		if err != nil {
			return err
		}
		if format == outputJSON {
			return presentation.WriteJSON(w, presentation.Document(res))
		}
		for _, def := range report.Catalog() {
			if rows, ok := res[def.Name]; ok {
				presentation.WriteTable(w, def.Name, def.Columns, rows)
			}
		}
		return nil
	}

	rows, err := engine.Run(ctx, name, p)
	if err != nil {
		return err
	}
	log.Debug("report executed", log.String("report", name), log.Int("rows", len(rows)))
	if format == outputJSON {
		return presentation.WriteJSON(w, presentation.Generic(rows))
	}
	def, _ := report.Lookup(name)
	presentation.WriteTable(w, def.Name, def.Columns, rows)
	return nil
}

func listReports(w io.Writer) {
	rows := make([]map[string]any, 0)
	for _, def := range report.Catalog() {
		required := "-"
		if len(def.Required) > 0 {
			required = fmt.Sprint(def.Required)
		}
		rows = append(rows, map[string]any{
			"name":        def.Name,
			"description": def.Description,
			"required":    required,
		})
	}
	presentation.WriteTable(w, "", []string{"name", "description", "required"}, rows)
}
