package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"lil-go/internal/fn"
	"lil-go/pkg/appdir"
	"lil-go/pkg/buffers"
	"lil-go/pkg/store"
)

func openStore() (*store.Store, error) {
	path, err := appdir.Path(cfg.StoreFile)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

// withStore opens the configured store around action and turns failures into
// exit errors.
func withStore(action func(c *cli.Context, st *store.Store) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		st, err := openStore()
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error opening store: %v", err), 1)
		}
		defer st.Close()
		if err := action(c, st); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return cli.Exit(err.Error(), 2)
			}
			return cli.Exit(err.Error(), 1)
		}
		return nil
	}
}

func requireName(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", fmt.Errorf("missing buffer name")
	}
	return c.Args().First(), nil
}

var putCommand = &cli.Command{
	Name:      "put",
	Usage:     "store TEXT under NAME, cut to the buffer's capacity",
	UsageText: "lil put [--budget N] NAME TEXT",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "budget", Aliases: []string{"b"}, Usage: "Capacity budget `N` (0: default_budget)"},
	},
	Action: withStore(func(c *cli.Context, st *store.Store) error {
		name, err := requireName(c)
		if err != nil {
			return err
		}
		b, err := buffers.Get(fn.Or(c.Int("budget"), cfg.DefaultBudget))
		if err != nil {
			return err
		}
		defer buffers.Put(b)
		text := c.Args().Get(1)
		b.AppendString(text)
		if b.Len() < len(text) {
			fmt.Fprintf(os.Stderr, "Warning: %d byte(s) dropped, capacity is %d\n", len(text)-b.Len(), b.Cap())
		}
		return st.Put(c.Context, name, b)
	}),
}

var getCommand = &cli.Command{
	Name:      "get",
	Usage:     "print the buffer stored under NAME",
	UsageText: "lil get [--layout] NAME",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "layout", Aliases: []string{"l"}, Usage: "Print the raw storage image as hex"},
	},
	Action: withStore(func(c *cli.Context, st *store.Store) error {
		name, err := requireName(c)
		if err != nil {
			return err
		}
		b, err := st.Get(c.Context, name)
		if err != nil {
			return err
		}
		defer buffers.Put(b)
		if c.Bool("layout") {
			fmt.Fprintf(c.App.Writer, "% x\n", b.Layout())
			return nil
		}
		fmt.Fprintln(c.App.Writer, b.String())
		return nil
	}),
}

var lsCommand = &cli.Command{
	Name:  "ls",
	Usage: "list stored buffers",
	Action: withStore(func(c *cli.Context, st *store.Store) error {
		entries, err := st.List(c.Context)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tBUDGET\tLEN\tUPDATED")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", e.Name, e.Budget, e.Len, e.UpdatedAt.Format(time.DateTime))
		}
		return tw.Flush()
	}),
}

var rmCommand = &cli.Command{
	Name:      "rm",
	Usage:     "delete the buffer stored under NAME",
	UsageText: "lil rm NAME",
	Action: withStore(func(c *cli.Context, st *store.Store) error {
		name, err := requireName(c)
		if err != nil {
			return err
		}
		return st.Delete(c.Context, name)
	}),
}

var compressionFlag = &cli.StringFlag{
	Name:  "compression",
	Usage: "Snapshot compression `NAME`: none, gzip or zstd (default: from config)",
}

var exportCommand = &cli.Command{
	Name:      "export",
	Usage:     "write a snapshot of every buffer to FILE",
	UsageText: "lil export [--compression NAME] FILE",
	Flags:     []cli.Flag{compressionFlag},
	Action: withStore(func(c *cli.Context, st *store.Store) error {
		path, err := requireName(c)
		if err != nil {
			return err
		}
		tr, err := snapshotTransform(c)
		if err != nil {
			return err
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		n, err := st.Export(c.Context, f, tr)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "exported %d buffer(s) to %s\n", n, path)
		return nil
	}),
}

var importCommand = &cli.Command{
	Name:      "import",
	Usage:     "load a snapshot written by export",
	UsageText: "lil import [--compression NAME] FILE",
	Flags:     []cli.Flag{compressionFlag},
	Action: withStore(func(c *cli.Context, st *store.Store) error {
		path, err := requireName(c)
		if err != nil {
			return err
		}
		tr, err := snapshotTransform(c)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := st.Import(c.Context, f, tr)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "imported %d buffer(s) from %s\n", n, path)
		return nil
	}),
}
