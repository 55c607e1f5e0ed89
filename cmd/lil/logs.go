package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"lil-go/pkg/log"
)

// timeFormats are tried in order on absolute time specs.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateTime,
	time.DateOnly,
}

// parseTimeSpec accepts a duration back from now ("90m", "2d", "1w") or an
// absolute timestamp.
func parseTimeSpec(spec string, now time.Time) (time.Time, error) {
	if d, err := parseDuration(spec); err == nil {
		return now.Add(-d), nil
	}
	for _, layout := range timeFormats {
		if ts, err := time.ParseInLocation(layout, spec, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification %q: use a duration (1h, 30m, 2d) or a timestamp (2023-10-27T15:04:05Z)", spec)
}

// parseDuration extends time.ParseDuration with whole days and weeks.
func parseDuration(spec string) (time.Duration, error) {
	for suffix, unit := range map[string]time.Duration{"d": 24 * time.Hour, "w": 7 * 24 * time.Hour} {
		if n, ok := strings.CutSuffix(spec, suffix); ok {
			count, err := strconv.Atoi(n)
			if err != nil || count < 0 {
				return 0, fmt.Errorf("invalid duration %q", spec)
			}
			return time.Duration(count) * unit, nil
		}
	}
	return time.ParseDuration(spec)
}

var logsCommand = &cli.Command{
	Name:      "logs",
	Usage:     "read entries from the SQLite log database",
	UsageText: "lil logs [--dbfile PATH] [--last|--since|--between] [mode options]",
	Description: `Modes (one at most; --last is the default):
   --last      the most recent --count entries
   --since     entries from --start until now
   --between   entries from --start to --end

Times are durations back from now (5m, 1h30m, 2d, 1w) or timestamps
(2023-10-27T15:04:05Z, "2023-10-27 10:00:00", 2023-10-27).`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dbfile",
			Aliases: []string{"f"},
			Usage:   "Log database `PATH` (default: log_file from config)",
		},
		&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "Print entries as console lines instead of raw JSON"},
		&cli.BoolFlag{Name: "last", Usage: "Mode: the most recent entries (default)"},
		&cli.BoolFlag{Name: "since", Usage: "Mode: entries since --start"},
		&cli.BoolFlag{Name: "between", Usage: "Mode: entries between --start and --end"},
		&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "Entries for --last `NUMBER`", Value: 100},
		&cli.StringFlag{Name: "start", Aliases: []string{"s"}, Usage: "Start `TIME_SPEC`"},
		&cli.StringFlag{Name: "end", Aliases: []string{"e"}, Usage: "End `TIME_SPEC`"},
		&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Max entries for --since/--between `NUMBER`", Value: 1000},
	},
	Action: logsCmd,
}

func logsCmd(c *cli.Context) error {
	modes := 0
	for _, m := range []string{"last", "since", "between"} {
		if c.Bool(m) {
			modes++
		}
	}
	if modes > 1 {
		return cli.Exit("Error: only one of --last, --since, --between may be given.", 1)
	}

	var err error
	if path := c.String("dbfile"); path != "" {
		if _, statErr := os.Stat(path); statErr != nil {
			return cli.Exit(fmt.Sprintf("Error: database file not found at %q", path), 1)
		}
		err = log.InitPath(path)
	} else {
		err = log.Init(cfg.LogFile)
	}
	if err != nil && !errors.Is(err, log.ErrAlreadyInitialized) {
		return cli.Exit(fmt.Sprintf("Error opening log database: %v", err), 1)
	}

	now := time.Now()
	var results []log.LogEntry
	switch {
	case c.Bool("since"):
		if !c.IsSet("start") {
			return cli.Exit("Error: --since needs --start.", 1)
		}
		start, perr := parseTimeSpec(c.String("start"), now)
		if perr != nil {
			return cli.Exit(perr.Error(), 1)
		}
		results, err = log.GetLogsSince(start, c.Int("limit"))
	case c.Bool("between"):
		if !c.IsSet("start") || !c.IsSet("end") {
			return cli.Exit("Error: --between needs --start and --end.", 1)
		}
		start, perr := parseTimeSpec(c.String("start"), now)
		if perr != nil {
			return cli.Exit(perr.Error(), 1)
		}
		end, perr := parseTimeSpec(c.String("end"), now)
		if perr != nil {
			return cli.Exit(perr.Error(), 1)
		}
		if start.After(end) {
			fmt.Fprintf(os.Stderr, "Warning: start %s is after end %s.\n", start.Format(time.RFC3339), end.Format(time.RFC3339))
		}
		results, err = log.GetLogsBetween(start, end, c.Int("limit"))
	default:
		if c.Int("count") <= 0 {
			return cli.Exit("Error: --count must be positive.", 1)
		}
		results, err = log.GetLastNLogs(c.Int("count"))
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", err), 1)
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No log entries found matching the criteria.")
		return nil
	}
	return printEntries(c.App.Writer, results, c.Bool("pretty"))
}

func printEntries(w io.Writer, entries []log.LogEntry, pretty bool) error {
	if !pretty {
		for _, e := range entries {
			fmt.Fprintln(w, e.LogData)
		}
		return nil
	}
	cw := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	for _, e := range entries {
		if _, err := cw.Write([]byte(e.LogData)); err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}
	}
	return nil
}
