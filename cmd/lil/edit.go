package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"lil-go/internal/fn"
	"lil-go/pkg/bstr"
	"lil-go/pkg/errs"
)

// An op is one line of an edit script:
//
//	insert <index> <text>
//	fill <index> <count> <byte>
//	append <text>
//	erase <index> <count>
//	push <byte>
//	pop
//	clear
//
// Text may be Go-quoted to carry spaces or escapes.
type op struct {
	verb  string
	index int
	count int
	text  string
}

// arity is the number of space-separated fields each verb takes, the verb
// included; the last field swallows the rest of the line.
var arity = map[string]int{
	"insert": 3,
	"fill":   4,
	"append": 2,
	"erase":  3,
	"push":   2,
	"pop":    1,
	"clear":  1,
}

func parseOp(line string) (op, error) {
	line = strings.TrimSpace(line)
	verb, _, _ := strings.Cut(line, " ")
	n, ok := arity[verb]
	if !ok {
		return op{}, errs.Errorf(errs.InvalidArgument, "unknown op %q", verb)
	}
	fields := strings.SplitN(line, " ", n)
	if len(fields) != n {
		return op{}, errs.Errorf(errs.InvalidArgument, "%s takes %d argument(s)", verb, n-1)
	}

	o := op{verb: verb}
	var err error
	switch verb {
	case "insert":
		o.index, err = strconv.Atoi(fields[1])
		if err == nil {
			o.text, err = unquote(fields[2])
		}
	case "fill":
		o.index, err = strconv.Atoi(fields[1])
		if err == nil {
			o.count, err = strconv.Atoi(fields[2])
		}
		if err == nil {
			o.text, err = unquote(fields[3])
		}
	case "append", "push":
		o.text, err = unquote(fields[1])
	case "erase":
		o.index, err = strconv.Atoi(fields[1])
		if err == nil {
			o.count, err = strconv.Atoi(fields[2])
		}
	}
	if err != nil {
		return op{}, errs.Wrap(errs.InvalidArgument, err, verb)
	}
	if (verb == "fill" || verb == "push") && len(o.text) != 1 {
		return op{}, errs.Errorf(errs.InvalidArgument, "%s takes a single byte, got %q", verb, o.text)
	}
	return o, nil
}

func unquote(s string) (string, error) {
	if strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "`") {
		return strconv.Unquote(s)
	}
	return s, nil
}

// apply runs o against b. Only push and pop can fail.
func (o op) apply(b bstr.Buffer) error {
	switch o.verb {
	case "insert":
		b.InsertString(o.index, o.text)
	case "fill":
		b.InsertFill(o.index, o.count, o.text[0])
	case "append":
		b.AppendString(o.text)
	case "erase":
		b.Erase(o.index, o.count)
	case "push":
		return b.PushBack(o.text[0])
	case "pop":
		_, err := b.PopBack()
		return err
	case "clear":
		b.Clear()
	}
	return nil
}

// runScript applies every line to b, printing the buffer after each step.
// A failing push or pop is reported and the script goes on.
func runScript(w io.Writer, b bstr.Buffer, lines []string) error {
	fmt.Fprintf(w, "%-24s %q\n", "start", b.String())
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		o, err := parseOp(line)
		if err != nil {
			return err
		}
		if err := o.apply(b); err != nil {
			fmt.Fprintf(w, "%-24s %q (%v)\n", line, b.String(), err)
			continue
		}
		fmt.Fprintf(w, "%-24s %q\n", line, b.String())
	}
	fmt.Fprintf(w, "len %d, cap %d, layout % x\n", b.Len(), b.Cap(), b.Layout())
	return nil
}

var editCommand = &cli.Command{
	Name:      "edit",
	Usage:     "apply an edit script to a scratch buffer",
	UsageText: `lil edit [--budget N] [--init TEXT] 'insert 0 ab' 'erase 1 1' ...`,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "budget",
			Aliases: []string{"b"},
			Usage:   "Capacity budget `N` (0: default_budget from config)",
		},
		&cli.StringFlag{
			Name:    "init",
			Aliases: []string{"i"},
			Usage:   "Initial `TEXT`",
		},
	},
	Action: func(c *cli.Context) error {
		b, err := bstr.New(fn.Or(c.Int("budget"), cfg.DefaultBudget))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		b.AppendString(c.String("init"))
		if err := runScript(c.App.Writer, b, c.Args().Slice()); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	},
}

var demoScript = []string{
	"fill 0 1 1",
	"fill 1 3 0",
	"fill 5 2 0",
	"fill 8 1 0",
	"fill 5 0 X",
	"erase 2 2",
	"insert 0 `two `",
	"append 123456789",
	"push !",
	"erase 1 99",
	"pop",
	"pop",
}

var demoCommand = &cli.Command{
	Name:  "demo",
	Usage: "walk a 10-byte buffer through inserts, overflow and erases",
	Action: func(c *cli.Context) error {
		var s bstr.Str[[10]byte]
		s.AppendString("58")
		return runScript(c.App.Writer, &s, demoScript)
	},
}
