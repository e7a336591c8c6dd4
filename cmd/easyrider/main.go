package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jusunglee/easyrider-go/internal/config"
	"github.com/jusunglee/easyrider-go/internal/feed"
	"github.com/jusunglee/easyrider-go/internal/report"
	"github.com/jusunglee/easyrider-go/internal/timetable"
	"github.com/jusunglee/easyrider-go/pkg/easyrider"
)

var usages = map[string]string{
	easyrider.CheckSchema:   "Count field type and format errors per record field",
	easyrider.CheckLines:    "Count the stops of every bus line",
	easyrider.CheckTopology: "List start, transfer and finish stops",
	easyrider.CheckArrival:  "Check that arrival times never go backwards on a line",
	easyrider.CheckOnDemand: "Find on-demand stops that are also transfer stops",
}

func main() {
	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		var exit cli.ExitCoder
		if !errors.As(err, &exit) {
			slog.Error("Check failed", "error", err)
		}
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	app := &cli.App{
		Name:        "easyrider",
		Usage:       "Validate bus timetable batches",
		Description: "Reads a JSON array of stop records and prints the report of one check",
		Writer:      stdout,
		// fatal reports are already printed; only the exit status is left
		ExitErrHandler: func(c *cli.Context, err error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to config.yml (limits.* apply to every check)",
			},
		},
	}

	for _, name := range easyrider.Checks {
		app.Commands = append(app.Commands, checkCommand(name, stdin, stdout))
	}
	return app
}

func checkCommand(name string, stdin io.Reader, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usages[name],
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Batch file, http(s) URL, or - for stdin",
				Value:   feed.Stdin,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout when fetching the batch over HTTP (default limits.fetch_timeout)",
			},
			&cli.Int64Flag{
				Name:  "max-bytes",
				Usage: "Reject larger batches (default limits.max_batch_bytes)",
			},
			&cli.IntFlag{
				Name:  "max-records",
				Usage: "Reject batches with more records, 0 for no limit (default limits.max_records)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			limits := cfg.Limits
			if c.IsSet("timeout") {
				limits.FetchTimeout = c.Duration("timeout")
			}
			if c.IsSet("max-bytes") {
				limits.MaxBatchBytes = c.Int64("max-bytes")
			}
			if c.IsSet("max-records") {
				limits.MaxRecords = c.Int("max-records")
			}

			loader := feed.NewLoader(limits.FetchTimeout, limits.MaxBatchBytes)
			loader.SetStdin(stdin)

			batch, err := loader.Load(c.Context, c.String("input"))
			if err != nil {
				return err
			}

			checker := easyrider.NewLocal(easyrider.Config{MaxRecords: limits.MaxRecords})
			result, err := checker.Run(name, batch)
			if err != nil {
				return fatal(stdout, err)
			}
			return report.Write(stdout, result.Report)
		},
	}
}

// fatal prints the single-line report of a run-aborting timetable error
func fatal(stdout io.Writer, err error) error {
	var (
		dup        *timetable.DuplicateRoleError
		incomplete *timetable.IncompleteLineError
	)
	if !errors.As(err, &dup) && !errors.As(err, &incomplete) {
		return err
	}
	if werr := report.Write(stdout, report.Fatal(err)); werr != nil {
		return werr
	}
	return cli.Exit("", 1)
}
