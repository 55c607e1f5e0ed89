package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"lil-go/pkg/assert"
	"lil-go/pkg/config"
	"lil-go/pkg/log"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// cfg is loaded once by the app's Before hook.
var cfg *config.Config

func newApp() *cli.App {
	return &cli.App{
		Name:    "lil",
		Usage:   "edit and store fixed-capacity byte strings",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration `FILE` (default: search for lil.yaml)",
				EnvVars: []string{"LIL_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			loaded, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error loading configuration: %v", err), 1)
			}
			if c.Bool("debug") {
				loaded.Debug = true
			}
			cfg = loaded
			log.SetStd(cfg.Debug)
			assert.Enable(cfg.Debug)
			log.Debug().Str("config", cfg.ConfigFile).Msg("configuration loaded")
			return nil
		},
		After: func(c *cli.Context) error {
			return log.Close()
		},
		Commands: []*cli.Command{
			demoCommand,
			editCommand,
			putCommand,
			getCommand,
			lsCommand,
			rmCommand,
			exportCommand,
			importCommand,
			serveCommand,
			logsCommand,
			versionCommand,
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "print the version",
	Action: func(c *cli.Context) error {
		fmt.Fprintf(c.App.Writer, "lil %s (built %s)\n", Version, BuildTime)
		return nil
	},
}
