package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"lil-go/pkg/api"
	"lil-go/pkg/log"
	"lil-go/pkg/store"
	"lil-go/pkg/transform"
)

func snapshotTransform(c *cli.Context) (transform.Transform, error) {
	if c.IsSet("compression") {
		return transform.ForName(c.String("compression"))
	}
	return cfg.Transform()
}

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "serve the buffer store over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "listen",
			Aliases: []string{"l"},
			Usage:   "Listen `ADDRESS` (default: api_listen_address from config)",
		},
		compressionFlag,
	},
	Action: withStore(func(c *cli.Context, st *store.Store) error {
		if cfg.LogFile != "" {
			if err := log.Init(cfg.LogFile); err != nil {
				return fmt.Errorf("log sink: %w", err)
			}
		}
		tr, err := snapshotTransform(c)
		if err != nil {
			return err
		}
		addr := cfg.APIListenAddr
		if c.IsSet("listen") {
			addr = c.String("listen")
		}
		fmt.Fprintf(c.App.Writer, "serving %s on %s\n", st.Path(), addr)
		return api.NewBufferApi(st, cfg.DefaultBudget, tr).Run(c.Context, addr)
	}),
}
